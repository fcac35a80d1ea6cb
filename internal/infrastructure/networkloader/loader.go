package networkloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"network_registry/internal/app/port"
	"network_registry/internal/domain/entity"
	"network_registry/internal/infrastructure/networkcodec"
	"network_registry/internal/pkg/metrics"
	"network_registry/internal/pkg/utils"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRemoteTimeout = 10 * time.Second

// Source labels used in errors and metrics.
const (
	SourceBundled      = "bundled"
	SourceRemote       = "remote"
	SourceOverrideFile = "override-file"
	SourceOverrideDir  = "override-dir"
)

// Options selects the documents a Loader assembles. Later sources replace
// earlier records with the same key: Bundled, RemoteURL, OverrideFile, then
// each file of OverrideDir in name order.
type Options struct {
	Bundled       []byte
	RemoteURL     string
	RemoteTimeout time.Duration
	OverrideFile  string
	OverrideDir   string

	// HTTPClient is used for RemoteURL. A default client is created when nil.
	HTTPClient *fasthttp.Client
}

// Loader implements port.NetworkTableSource.
type Loader struct {
	opts    Options
	client  *fasthttp.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewLoader creates a Loader. m may be nil.
func NewLoader(opts Options, logger *zap.Logger, m *metrics.Metrics) port.NetworkTableSource {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = defaultRemoteTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &fasthttp.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		opts:    opts,
		client:  client,
		logger:  logger.Named("NetworkLoader"),
		metrics: m,
	}
}

// Load assembles the networks table. Any malformed document aborts the load.
func (l *Loader) Load(ctx context.Context) (map[string]entity.NetworkConfig, error) {
	if len(l.opts.Bundled) == 0 {
		return nil, errors.New("bundled networks document is empty")
	}
	table, err := l.decode(SourceBundled, l.opts.Bundled)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loaded bundled networks", zap.Int("count", len(table)))

	if l.opts.RemoteURL != "" {
		data, err := l.fetch(ctx, l.opts.RemoteURL)
		if err != nil {
			return nil, err
		}
		remote, err := l.decode(SourceRemote, data)
		if err != nil {
			return nil, err
		}
		l.merge(table, remote, SourceRemote)
	}

	if l.opts.OverrideFile != "" {
		data, err := os.ReadFile(l.opts.OverrideFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read override file %s: %w", l.opts.OverrideFile, err)
		}
		overrides, err := l.decode(SourceOverrideFile, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.opts.OverrideFile, err)
		}
		l.merge(table, overrides, SourceOverrideFile)
	}

	if l.opts.OverrideDir != "" {
		if err := l.applyDir(ctx, table); err != nil {
			return nil, err
		}
	}

	l.logger.Info("Networks table assembled", zap.Int("count", len(table)))
	return table, nil
}

func (l *Loader) decode(source string, data []byte) (map[string]entity.NetworkConfig, error) {
	table, err := networkcodec.DecodeTable(data)
	if err != nil {
		l.metrics.ObserveDecodeFailure(source)
		return nil, fmt.Errorf("%s networks document: %w", source, err)
	}
	return table, nil
}

func (l *Loader) merge(table, overrides map[string]entity.NetworkConfig, source string) {
	for key, cfg := range overrides {
		if _, exists := table[key]; exists {
			l.logger.Debug("Network replaced", zap.String("network", key), zap.String("source", source))
		} else {
			l.logger.Debug("Network added", zap.String("network", key), zap.String("source", source))
		}
		table[key] = cfg
	}
}

// applyDir decodes every <network>.json under OverrideDir concurrently and
// applies the results in file name order.
func (l *Loader) applyDir(ctx context.Context, table map[string]entity.NetworkConfig) error {
	files, err := utils.ListJSONFiles(l.opts.OverrideDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		l.logger.Info("No JSON files found in override directory", zap.String("dir", l.opts.OverrideDir))
		return nil
	}

	decoded := make([]entity.NetworkConfig, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read override file %s: %w", path, err)
			}
			cfg, err := networkcodec.DecodeEntry(utils.FileKey(path), data)
			if err != nil {
				l.metrics.ObserveDecodeFailure(SourceOverrideDir)
				return fmt.Errorf("%s: %w", path, err)
			}
			decoded[i] = cfg
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, cfg := range decoded {
		l.merge(table, map[string]entity.NetworkConfig{cfg.Network: cfg}, SourceOverrideDir)
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	l.logger.Debug("Requesting networks document", zap.String("url", url))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := l.client.DoDeadline(req, resp, deadline); err != nil {
			l.logger.Error("Failed to fetch networks document", zap.String("url", url), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", url, err)
		}
	} else {
		if err := l.client.DoTimeout(req, resp, l.opts.RemoteTimeout); err != nil {
			l.logger.Error("Failed to fetch networks document (with default timeout)", zap.String("url", url), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", url, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		l.logger.Error("Networks document request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()),
		)
		return nil, fmt.Errorf("request to %s failed with status %d", url, resp.StatusCode())
	}

	// The response is released on return.
	body := append([]byte(nil), resp.Body()...)
	return body, nil
}
