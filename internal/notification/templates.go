// internal/notification/templates.go

package notification

import "fmt"

func newMatchEmail(recipientName, otherName string) (subject, body string) {
	subject = "You have a new match!"
	body = fmt.Sprintf(`
		<h2>It's a match, %s!</h2>
		<p>You and <strong>%s</strong> liked each other.</p>
		<p>Open the app to start the conversation.</p>
	`, recipientName, otherName)
	return subject, body
}

func newLikeEmail(recipientName string) (subject, body string) {
	subject = "Someone likes you"
	body = fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Someone just liked your profile. Open the app to find out who.</p>
	`, recipientName)
	return subject, body
}

func newMatchSMS(otherName string) string {
	return fmt.Sprintf("It's a match! You and %s liked each other. Open Heartlink to say hi.", otherName)
}
