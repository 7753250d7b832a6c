// Package downloads stores bytes the host has already fetched into the user's
// download directory, under a name that does not clobber existing files.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
	"github.com/vfaronov/httpheader"

	apperrors "github.com/jxwalker/pakeshell/internal/errors"
	"github.com/jxwalker/pakeshell/internal/i18n"
	"github.com/jxwalker/pakeshell/internal/logging"
	"github.com/jxwalker/pakeshell/internal/metrics"
	"github.com/jxwalker/pakeshell/internal/notify"
	"github.com/jxwalker/pakeshell/internal/state"
	"github.com/jxwalker/pakeshell/internal/system"
	"github.com/jxwalker/pakeshell/internal/util"
)

// maxCreateAttempts bounds how often a name is re-resolved when another writer
// claims it between resolution and creation.
const maxCreateAttempts = 8

// Request describes one payload handed over by the host.
type Request struct {
	URL                string // source URL, used for naming and the journal
	Filename           string // name suggested by the page, if any
	ContentDisposition string // raw response header, if any
	Language           string // language hint for toasts; "" probes the environment
	Data               []byte
}

// Result is what a successful Save produced.
type Result struct {
	ID      string // journal id, "" without a journal
	Path    string
	Renamed bool // the chosen name collided and was suffixed
	Size    int64
	SHA256  string
}

// Saver writes downloads. Window, Journal and Metrics are optional.
type Saver struct {
	Dir      string
	Window   notify.Evaluator
	Messages i18n.Selector
	Journal  *state.DB
	Metrics  *metrics.Manager
	Log      *logging.Logger
}

func (s *Saver) logger() *logging.Logger {
	if s.Log == nil {
		return logging.Nop()
	}
	return s.Log.With("downloads")
}

func (s *Saver) toast(kind i18n.MessageType, lang string) {
	msg := s.Messages.Resolve(kind, lang, lang != "")
	if err := notify.ShowToast(s.Window, msg); err != nil {
		s.logger().Warnf("%v", err)
	}
}

// Save stores req.Data and reports where it went. Start, Success and Failure
// toasts are shown around the write.
func (s *Saver) Save(ctx context.Context, req Request) (Result, error) {
	log := s.logger()
	s.toast(i18n.Start, req.Language)

	name := ChooseFilename(req)
	row := state.DownloadRow{URL: req.URL, Filename: name, Dest: filepath.Join(s.Dir, name), Status: state.StatusStarted}
	if s.Journal != nil {
		id, err := s.Journal.Record(row)
		if err != nil {
			log.Warnf("journal: %v", apperrors.DatabaseError(err))
		}
		row.ID = id
	}

	res, err := s.write(ctx, name, req.Data)
	if err != nil {
		log.Errorf("save %s: %v", name, err)
		row.Status, row.LastError = state.StatusFailed, err.Error()
		s.record(row)
		s.Metrics.IncFailed()
		s.toast(i18n.Failure, req.Language)
		return Result{}, err
	}

	row.Dest, row.Size, row.SHA256, row.Status = res.Path, res.Size, res.SHA256, state.StatusSaved
	res.ID = s.record(row)
	s.Metrics.ObserveSave(res.Size, res.Renamed)
	log.Infof("saved %s (%s) from %s", res.Path, humanize.Bytes(uint64(res.Size)), logging.SanitizeURL(req.URL))
	s.toast(i18n.Success, req.Language)
	return res, nil
}

func (s *Saver) record(row state.DownloadRow) string {
	if s.Journal == nil {
		return ""
	}
	id, err := s.Journal.Record(row)
	if err != nil {
		s.logger().Warnf("journal: %v", apperrors.DatabaseError(err))
	}
	return id
}

func (s *Saver) write(ctx context.Context, name string, data []byte) (Result, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return Result{}, apperrors.IOError("save download", name, errors.New("no download directory configured"))
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Result{}, apperrors.IOError("create download dir", s.Dir, err)
	}
	if ok, avail, err := system.HasSufficientSpace(s.Dir, uint64(len(data))); err != nil {
		s.logger().Debugf("free space unknown: %v", err)
	} else if !ok {
		return Result{}, apperrors.IOError("save download", name,
			fmt.Errorf("need %s but only %s free", humanize.Bytes(uint64(len(data))), humanize.Bytes(avail)))
	}
	want := filepath.Join(s.Dir, name)
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		dest := util.ResolveUniquePath(want)
		err := util.WriteExclusive(dest, data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return Result{}, apperrors.IOError("write", dest, err)
		}
		return Result{
			Path:    dest,
			Renamed: dest != want,
			Size:    int64(len(data)),
			SHA256:  util.HashBytesSHA256(data),
		}, nil
	}
	return Result{}, apperrors.IOError("write", want, fmt.Errorf("name still taken after %d attempts", maxCreateAttempts))
}

// ChooseFilename picks the on-disk name for req: the page's suggestion, then the
// Content-Disposition filename, then the URL's last path segment. The result is
// sanitized, and an extension sniffed from the payload is appended when it has none.
func ChooseFilename(req Request) string {
	name := strings.TrimSpace(req.Filename)
	if name == "" && req.ContentDisposition != "" {
		h := http.Header{}
		h.Set("Content-Disposition", req.ContentDisposition)
		_, fn, _ := httpheader.ContentDisposition(h)
		name = strings.TrimSpace(fn)
	}
	if name == "" {
		name = util.URLPathBase(req.URL)
	}
	name = util.SafeFileName(name)
	if filepath.Ext(name) == "" {
		if ext := sniffExtension(req.Data); ext != "" {
			name += "." + ext
		}
	}
	return name
}

func sniffExtension(data []byte) string {
	head := data
	if len(head) > 262 {
		head = head[:262]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.Extension
}
