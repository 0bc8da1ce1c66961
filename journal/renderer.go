package journal

import (
	"github.com/aarnaud/vkwsamples/bridge"
	"gopkg.in/op/go-logging.v1"
)

// Renderer journals every call forwarded to the wrapped renderer
type Renderer struct {
	next bridge.Renderer
	j    *Journal
	log  *logging.Logger
}

var _ bridge.Renderer = (*Renderer)(nil)

func NewRenderer(next bridge.Renderer, j *Journal, log *logging.Logger) *Renderer {
	if log == nil {
		log = logging.MustGetLogger("journal")
	}
	return &Renderer{next: next, j: j, log: log}
}

func (r *Renderer) record(call string, arg int64, ok bool) bool {
	if err := r.j.Record(call, arg, ok); err != nil {
		r.log.Warningf("failed to journal %s: %v", call, err)
	}
	return ok
}

func (r *Renderer) Init(sampleID int) bool {
	return r.record("init", int64(sampleID), r.next.Init(sampleID))
}

func (r *Renderer) Destroy() bool {
	return r.record("destroy", 0, r.next.Destroy())
}

func (r *Renderer) Start() bool {
	return r.record("start", 0, r.next.Start())
}

func (r *Renderer) Stop() bool {
	return r.record("stop", 0, r.next.Stop())
}

func (r *Renderer) BindSurface(s bridge.Surface) bool {
	return r.record("bindSurface", 0, r.next.BindSurface(s))
}

func (r *Renderer) Resize() bool {
	return r.record("resize", 0, r.next.Resize())
}

func (r *Renderer) UnbindSurface() bool {
	return r.record("unbindSurface", 0, r.next.UnbindSurface())
}
