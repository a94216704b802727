package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/logrusorgru/aurora"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

type Sink struct {
	w  io.Writer
	au aurora.Aurora
}

func NewSink() port.Sink { return NewWriterSink(os.Stdout, true) }

// NewWriterSink writes to w; colors toggles ANSI status colouring.
func NewWriterSink(w io.Writer, colors bool) port.Sink {
	return &Sink{w: w, au: aurora.NewAurora(colors)}
}

func (s *Sink) status(code int) aurora.Value {
	label := fmt.Sprintf("HTTP %d", code)
	switch {
	case code >= 200 && code < 300:
		return s.au.Green(label)
	case code >= 400:
		return s.au.Red(label)
	default:
		return s.au.Yellow(label)
	}
}

// WriteResult 打印一次调用结果：状态行 + 缩进后的 JSON
func (s *Sink) WriteResult(name string, status int, payload []byte, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(s.w, "%s %s: %v\n", s.au.Bold(name), s.au.Red("failed"), err)
		return werr
	}
	if _, werr := fmt.Fprintf(s.w, "%s %s\n", s.au.Bold(name), s.status(status)); werr != nil {
		return werr
	}
	_, werr := s.w.Write(append(indentJSON(payload), '\n'))
	return werr
}

func (s *Sink) WriteEvent(ev model.StreamEvent) error {
	_, err := fmt.Fprintf(s.w, "%s %s %s\n",
		ev.ReceivedAt.Format("2006-01-02 15:04:05"),
		s.au.Cyan(ev.Channel),
		compactJSON(ev.Message),
	)
	return err
}

func (s *Sink) WriteRecords(recs []model.CallRecord) error {
	tw := tabwriter.NewWriter(s.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tENDPOINT\tMETHOD\tSTATUS\tOUTCOME\tDURATION\tERROR")
	for _, r := range recs {
		endpoint := r.Endpoint
		if endpoint == "" {
			endpoint = r.Path
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			endpoint,
			r.Method,
			r.StatusCode,
			r.Outcome,
			r.Duration.Round(time.Millisecond),
			r.Error,
		)
	}
	return tw.Flush()
}

func indentJSON(b []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return b
	}
	return buf.Bytes()
}

func compactJSON(b []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return string(b)
	}
	return buf.String()
}
