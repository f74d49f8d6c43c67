package deployclient

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Printed once per status query while waiting for a deployment.
const ProgressMarker = "."

type ActionsFormatter struct{}

// ProgressSink receives user-visible feedback while a deployment is polled.
type ProgressSink interface {
	Emit(marker string)
}

type writerProgress struct {
	w io.Writer
}

func NewProgressWriter(w io.Writer) ProgressSink {
	return &writerProgress{w: w}
}

func (p *writerProgress) Emit(marker string) {
	_, _ = fmt.Fprint(p.w, marker)
}

func SetupLogging(cfg Config) {
	log.SetOutput(os.Stderr)

	if cfg.Actions {
		log.SetFormatter(&ActionsFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:          true,
			TimestampFormat:        time.RFC3339Nano,
			DisableLevelTruncation: true,
		})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(level)
	} else if len(cfg.LogLevel) > 0 {
		log.Warnf("Unknown log level %q; using %s", cfg.LogLevel, log.GetLevel())
	}

	if cfg.Quiet {
		log.SetLevel(log.ErrorLevel)
	}
}

func (a *ActionsFormatter) Format(e *log.Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch e.Level {
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		buf.WriteString("::error::")
	case log.WarnLevel:
		buf.WriteString("::warning::")
	default:
		buf.WriteString("[")
		buf.WriteString(e.Time.Format(time.RFC3339Nano))
		buf.WriteString("] ")
	}
	buf.WriteString(e.Message)
	buf.WriteRune('\n')
	return buf.Bytes(), nil
}

func logVerdict(verdict Verdict) {
	fn := log.Infof
	switch verdict.Outcome {
	case Failure:
		fn = log.Errorf
	case Timeout:
		fn = log.Warnf
	}
	fn("Deployment %s: %s", verdict.Outcome, verdict.Reason)
}
