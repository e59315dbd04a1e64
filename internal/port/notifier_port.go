package port

import "context"

// NotaNotification is the payload sent to the mail-notifier service.
type NotaNotification struct {
	Email string `json:"email"`
	Folio string `json:"folio"`
	RFC   string `json:"rfc"`
	S3Key string `json:"s3_key"`
}

type Notifier interface {
	NotaCreated(ctx context.Context, n NotaNotification) error
}
