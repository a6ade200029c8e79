package api

import (
	"log"

	"agrichat/internal/storage"
	"agrichat/internal/utils"

	"github.com/gin-gonic/gin"
)

// uploadImage handles POST /api/upload/image
func (h *Handler) uploadImage(c *gin.Context) {
	log.Printf("[Upload] Image upload request received")

	language := c.DefaultPostForm("language", "urdu")

	image, file, ok := h.imageUpload(c)
	if !ok {
		return
	}

	log.Printf("[Upload] Image file: %s, %d bytes, language: %s", file.Filename, len(image), language)

	// Keep a copy on disk while the request is processed, matching what
	// history download endpoints would expect; it is removed once the
	// advice has been produced.
	path, err := storage.SaveUpload(file, h.uploadPath)
	if err != nil {
		utils.ServerError(c, "Failed to save uploaded file", err)
		return
	}
	defer storage.Remove(path)

	result := h.advisor.ProcessImageBuffer(c.Request.Context(), image, language)

	log.Printf("[Upload] Image processed, advice length: %d", len(result.Advice))

	utils.Created(c, "Image analyzed successfully", gin.H{
		"advice":   result.Advice,
		"analysis": result.Analysis,
	})
}

// uploadVoice handles POST /api/upload/voice
func (h *Handler) uploadVoice(c *gin.Context) {
	log.Printf("[Upload] Voice upload request received")

	language := c.DefaultPostForm("language", "urdu")

	audio, file, ok := h.voiceUpload(c)
	if !ok {
		return
	}

	log.Printf("[Upload] Audio file: %s, %d bytes, language: %s", file.Filename, len(audio), language)

	path, err := storage.SaveUpload(file, h.uploadPath)
	if err != nil {
		utils.ServerError(c, "Failed to save uploaded file", err)
		return
	}
	defer storage.Remove(path)

	result := h.advisor.ProcessAudioBuffer(c.Request.Context(), audio, language)

	log.Printf("[Upload] Voice processed, transcription length: %d, advice length: %d",
		len(result.Transcription), len(result.Advice))

	utils.Created(c, "Voice processed successfully", gin.H{
		"transcription": result.Transcription,
		"advice":        result.Advice,
		"analysis":      result.Analysis,
	})
}

// transcribeVoice handles POST /api/upload/transcribe - transcription
// only, no advice generation
func (h *Handler) transcribeVoice(c *gin.Context) {
	log.Printf("[Upload] Transcribe request received")

	language := c.DefaultPostForm("language", "urdu")

	audio, file, ok := h.voiceUpload(c)
	if !ok {
		return
	}

	log.Printf("[Upload] Audio file: %s, %d bytes, language: %s", file.Filename, len(audio), language)

	transcription := h.advisor.TranscribeAudio(c.Request.Context(), audio, language)

	log.Printf("[Upload] Transcription completed, length: %d", len(transcription))

	utils.Success(c, gin.H{
		"transcription": transcription,
	})
}
