package icons

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"gamedata-worker/core/queue"
	"gamedata-worker/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JobMirror mirrors icon files from the CDN into the local bucket.
const JobMirror queue.JobType = "icons.mirror"

// mirrorSize is the icon render size that gets mirrored.
const mirrorSize = 64

// Mirror copies icon renders from the upstream CDN into the configured
// bucket, keyed by the same <signature>/<id>-<size>px.png path so the bucket
// can serve as a drop-in CDN origin.
type Mirror struct {
	db         *gorm.DB
	store      storage.Client
	bucket     string
	cdnURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMirror creates the icon mirror job handler.
func NewMirror(db *gorm.DB, store storage.Client, bucket, cdnURL string, timeoutSeconds int, logger *zap.Logger) *Mirror {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	return &Mirror{
		db:         db,
		store:      store,
		bucket:     bucket,
		cdnURL:     strings.TrimSuffix(cdnURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		logger:     logger,
	}
}

// Type implements worker.Handler.
func (m *Mirror) Type() queue.JobType {
	return JobMirror
}

// Run mirrors the icons with the given ids, or every known icon when the
// payload is empty. Icons already present in the bucket are skipped; per-icon
// failures are isolated and reported through the job error detail.
func (m *Mirror) Run(ctx context.Context, ids []int) (string, error) {
	var icons []Icon
	query := m.db.WithContext(ctx)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Order("id asc").Find(&icons).Error; err != nil {
		return "", fmt.Errorf("failed to load icons: %w", err)
	}

	mirrored := 0
	skipped := 0
	failures := make(map[int]string)

	for _, icon := range icons {
		objectKey := fmt.Sprintf("%s/%d-%dpx.png", icon.Signature, icon.ID, mirrorSize)

		if _, err := m.store.StatObject(ctx, m.bucket, objectKey, minio.StatObjectOptions{}); err == nil {
			skipped++
			continue
		} else if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			failures[icon.ID] = err.Error()
			continue
		}

		data, err := m.fetch(ctx, objectKey)
		if err != nil {
			failures[icon.ID] = err.Error()
			continue
		}

		_, err = m.store.PutObject(ctx, m.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "image/png"})
		if err != nil {
			failures[icon.ID] = err.Error()
			continue
		}

		mirrored++
	}

	m.logger.Info("Mirrored icons",
		zap.Int("mirrored", mirrored),
		zap.Int("skipped", skipped),
		zap.Int("failed", len(failures)),
	)

	result := fmt.Sprintf("Mirrored %d/%d icons (%d already present)", mirrored, len(icons), skipped)
	if len(failures) > 0 {
		return result, mirrorError(failures)
	}

	return result, nil
}

func (m *Mirror) fetch(ctx context.Context, objectKey string) ([]byte, error) {
	url := m.cdnURL + "/" + objectKey

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cdn fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cdn returned %s for %s", resp.Status, url)
	}

	return io.ReadAll(resp.Body)
}

func mirrorError(failures map[int]string) error {
	ids := make([]int, 0, len(failures))
	for id := range failures {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d: %s", id, failures[id])
	}

	return fmt.Errorf("%d icons failed: %s", len(ids), strings.Join(parts, "; "))
}
