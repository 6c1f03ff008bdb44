package mailer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/osteele/liquid"
)

const invitationSubject = `{{ inviter_name }} invited you to {{ workspace_name }}`

const invitationHTML = `<html>
<body>
<h1>You're invited to {{ workspace_name }}</h1>
<p>{{ inviter_name }} invited you to collaborate on <strong>{{ workspace_name }}</strong> as {{ role }}.</p>
<p><a href="{{ link }}">Open invitation</a></p>
<p>If the button does not work, paste this address in your browser: {{ link }}</p>
<p>This invitation expires on {{ expires_at }}.</p>
</body>
</html>`

// InvitationData is bound into the invitation templates
type InvitationData struct {
	WorkspaceName string
	InviterName   string
	Role          string
	Link          string
	ExpiresAt     string
}

// Message is a rendered email
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var engine = liquid.NewEngine()

// RenderInvitation renders the invitation email, the text part is derived from the HTML
func RenderInvitation(data InvitationData) (*Message, error) {
	bindings := map[string]interface{}{
		"workspace_name": data.WorkspaceName,
		"inviter_name":   data.InviterName,
		"role":           data.Role,
		"link":           data.Link,
		"expires_at":     data.ExpiresAt,
	}

	subject, serr := engine.ParseAndRenderString(invitationSubject, bindings)
	if serr != nil {
		return nil, fmt.Errorf("failed to render invitation subject: %w", serr)
	}
	html, serr := engine.ParseAndRenderString(invitationHTML, bindings)
	if serr != nil {
		return nil, fmt.Errorf("failed to render invitation body: %w", serr)
	}
	text, err := HTMLToText(html)
	if err != nil {
		return nil, err
	}
	return &Message{Subject: subject, HTML: html, Text: text}, nil
}

// HTMLToText flattens block elements into lines of text
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var lines []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		line := strings.Join(strings.Fields(s.Text()), " ")
		if line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(lines, "\n\n"), nil
}
