// Package postmark implements email.EmailSender on top of the Postmark
// transactional API (github.com/mrz1836/postmark).
//
//	sender, err := postmark.New(postmark.Config{
//		ServerToken: os.Getenv("POSTMARK_SERVER_TOKEN"),
//		SenderEmail: "alerts@example.com",
//	})
//
// Postmark answers application level failures with HTTP 200 and a non-zero
// ErrorCode; SendEmail reports both transport and API failures wrapped in
// email.ErrFailedToSendEmail.
package postmark
