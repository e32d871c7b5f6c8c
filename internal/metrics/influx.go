package metrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reporthub/reporthub/internal/logging"
)

// StartInfluxPusher pushes the metrics snapshot to InfluxDB every interval
// until ctx is done, then pushes once more so the last run is recorded.
func StartInfluxPusher(ctx context.Context, url, token, org, bucket string, interval time.Duration) {
	if url == "" || bucket == "" || interval <= 0 {
		return
	}
	logging.Get().Info().Str("url", url).Dur("interval", interval).Msg("starting influxdb pusher")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	client := &http.Client{Timeout: 5 * time.Second}
	writeURL := influxWriteURL(url, org, bucket)

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pushToInflux(flushCtx, client, writeURL, token)
			cancel()
			return
		case <-ticker.C:
			pushToInflux(ctx, client, writeURL, token)
		}
	}
}

func influxWriteURL(url, org, bucket string) string {
	return fmt.Sprintf("%s/api/v2/write?org=%s&bucket=%s&precision=s", strings.TrimRight(url, "/"), org, bucket)
}

// lineProtocol renders a snapshot as a single Influx line:
// reporthub reports_generated=3i,notifications_sent=2i,... <unix seconds>
func lineProtocol(s StatsSnapshot, now time.Time) string {
	return fmt.Sprintf(
		"reporthub reports_generated=%di,notifications_sent=%di,notifications_invalid=%di,notifications_failed=%di,unsupported_lookups=%di,decorations_rendered=%di,last_run=%di %d",
		s.ReportsGenerated, s.NotificationsSent, s.NotificationsInvalid, s.NotificationsFailed,
		s.UnsupportedLookups, s.DecorationsRendered, s.LastRun, now.Unix(),
	)
}

func pushToInflux(ctx context.Context, client *http.Client, url, token string) {
	lines := lineProtocol(GetSnapshot(), time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(lines)))
	if err != nil {
		logging.Get().Error().Err(err).Msg("influxdb request creation failed")
		return
	}

	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		logging.Get().Error().Err(err).Msg("influxdb push failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logging.Get().Warn().Int("status", resp.StatusCode).Msg("influxdb rejected metrics")
	}
}
