// Package email defines the EmailSender abstraction used for operational
// notifications, plus DevSender, which writes messages to disk instead of
// delivering them.
//
//	sender := email.NewDevSender("./tmp/emails")
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "oncall@example.com",
//		Subject:  "[api] critical error",
//		BodyHTML: body,
//		Tag:      "exception-alert",
//	})
//
// Production transports live under integration/email.
package email
