//go:build windows

package notify

import (
	"encoding/base64"
	"fmt"
)

const toastScript = `
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode(%s)) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode(%s)) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('Claude Code').Show($toast)
`

// localCommand builds a PowerShell toast invocation.
func localCommand(p Payload) (string, []string, error) {
	script := fmt.Sprintf(toastScript, powerShellString(p.Title), powerShellString(p.Message))
	return "powershell", []string{"-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script}, nil
}

// powerShellString returns a PowerShell expression evaluating to s. The text
// travels base64-encoded, so no quote character (ASCII or typographic),
// backtick or dollar sign in s reaches the parser.
func powerShellString(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	return fmt.Sprintf("[Text.Encoding]::UTF8.GetString([Convert]::FromBase64String('%s'))", enc)
}
