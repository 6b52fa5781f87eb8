// Package prometheus renders authgate metrics in Prometheus text exposition
// format without pulling in a metrics client library.
package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	authgate "github.com/MrEthical07/authgate"
)

type metricsSource interface {
	MetricsSnapshot() authgate.MetricsSnapshot
	AuditDropped() uint64
}

type counterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

var counterDefs = []counterDef{
	{authgate.MetricRegisterSuccess, "authgate_register_success_total", "Successful registrations."},
	{authgate.MetricRegisterInvalid, "authgate_register_invalid_total", "Registrations rejected by format validation."},
	{authgate.MetricRegisterDuplicate, "authgate_register_duplicate_total", "Registrations rejected for a taken username."},
	{authgate.MetricRegisterRateLimited, "authgate_register_rate_limited_total", "Registrations rejected by the per-address budget."},
	{authgate.MetricLoginSuccess, "authgate_login_success_total", "Successful logins."},
	{authgate.MetricLoginFailure, "authgate_login_failure_total", "Logins rejected for bad credentials."},
	{authgate.MetricLoginRateLimited, "authgate_login_rate_limited_total", "Logins rejected by the per-address budget."},
	{authgate.MetricRefreshSuccess, "authgate_refresh_success_total", "Successful access-token refreshes."},
	{authgate.MetricRefreshFailure, "authgate_refresh_failure_total", "Refreshes denied."},
	{authgate.MetricLogout, "authgate_logout_total", "Logouts."},
}

// Exporter renders gateway metrics in Prometheus text exposition format.
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter that reads from the given [authgate.Gateway].
func NewExporter(gateway *authgate.Gateway) *Exporter {
	return &Exporter{source: gateway}
}

// NewExporterFromSource creates an exporter from a custom source.
func NewExporterFromSource(source metricsSource) *Exporter {
	return &Exporter{source: source}
}

// Handler returns an http.Handler that serves the metrics.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render returns the current metrics as text exposition.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.MetricsSnapshot()
	dropped := e.source.AuditDropped()

	var b strings.Builder
	b.Grow(4096)

	for _, def := range counterDefs {
		var value uint64
		if int(def.ID) < len(snapshot.Counters) {
			value = snapshot.Counters[def.ID]
		}
		writeCounter(&b, def.Name, def.Help, value)
	}

	writeCounter(&b, "authgate_audit_dropped_total", "Dropped audit events due to dispatcher backpressure.", dropped)

	return b.String()
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" counter\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}
