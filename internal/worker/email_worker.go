package worker

// email_worker.go
// Processes email jobs from QueueEmail: password-reset mails and sale-note
// PDF deliveries. PDF bytes travel through Redis base64-encoded.

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"automotora/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	PDFBase64 string `json:"pdf_base64,omitempty"`
	Filename  string `json:"filename,omitempty"`
}

// EmailWorker sends queued mails via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email, attaching the decoded PDF when present. A non-nil
// error tells the pool to retry; malformed payloads are dropped without retry.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	var pdf []byte
	if payload.PDFBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(payload.PDFBase64)
		if err != nil {
			log.Error().Err(err).Msg("email_worker: invalid pdf payload")
			return nil
		}
		pdf = decoded
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, pdf, payload.Filename); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: mail sent")
	return nil
}
