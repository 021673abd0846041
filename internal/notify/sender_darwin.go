//go:build darwin

package notify

// localCommand builds a terminal-notifier invocation.
func localCommand(p Payload) (string, []string, error) {
	args := []string{"-title", p.Title, "-message", p.Message, "-sound", "default"}
	if p.ActivateTarget != "" {
		args = append(args, "-activate", p.ActivateTarget)
	}
	return "terminal-notifier", args, nil
}
