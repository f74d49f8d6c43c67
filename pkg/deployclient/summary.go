package deployclient

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// summary writes a markdown report of the run when running in GitHub Actions.
// All methods are no-ops when no summary file is available.
type summary struct {
	w io.WriteCloser
}

func openSummary(env EnvironmentSource) *summary {
	path, ok := env.Lookup("GITHUB_STEP_SUMMARY")
	if !ok || len(path) == 0 {
		return &summary{}
	}
	if enabled, _ := env.Lookup("OPSDEPLOY_SUMMARY"); strings.ToLower(enabled) == "false" {
		return &summary{}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warnf("Unable to write step summary: %s", err)
		return &summary{}
	}
	return &summary{w: file}
}

func (s *summary) printf(format string, a ...any) {
	if s.w == nil {
		return
	}
	_, _ = fmt.Fprintf(s.w, format+"\n", a...)
}

func (s *summary) verdict(verdict Verdict) {
	s.printf("")
	s.printf("%s Final status: *%s* / %s", outcomeEmoji(verdict.Outcome), verdict.Outcome, verdict.Reason)
}

func (s *summary) Close() {
	if s.w == nil {
		return
	}
	_ = s.w.Close()
}

func outcomeEmoji(outcome Outcome) string {
	switch outcome {
	case Success:
		return "✅"
	case Timeout:
		return "⏳"
	default:
		return "❌"
	}
}
