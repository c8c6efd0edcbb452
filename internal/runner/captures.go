package runner

// storeCapture makes the step result available to later templates as
// {{ .name }}. to_list results are stored as the list's JSON text.
func storeCapture(name string, out outcome, captures map[string]any) {
	if name == "" {
		return
	}
	captures[name] = out.text
}
