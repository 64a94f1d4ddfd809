package stats

import (
	"net/url"
	"strconv"
)

// Hit is the validated view of an accepted image request that the
// aggregation stages consume. Validation happens before a Hit is built, so
// stages operate only on already-valid data.
type Hit struct {
	Path      string // request path, e.g. "/img/100/200"
	Size      Size
	Square    int
	HasSquare bool
	Text      string
	HasText   bool
	Referrer  string // raw Referer header, empty when absent
}

// CanonicalURL rebuilds the externally visible request URL: the path plus a
// deterministic re-serialization of the query parameters that were actually
// supplied. url.Values.Encode sorts keys and percent-encodes values, so
// equivalent requests always produce the same string.
func (h Hit) CanonicalURL() string {
	q := url.Values{}
	if h.HasSquare {
		if h.Square > 0 {
			q.Set("square", strconv.Itoa(h.Square))
		} else {
			q.Set("square", "")
		}
	}
	if h.HasText {
		q.Set("text", h.Text)
	}
	enc := q.Encode()
	if enc == "" {
		return h.Path
	}
	return h.Path + "?" + enc
}

// stage is one independent aggregation step. Each stage confines its side
// effect to a single store collection and reads no other stage's output.
type stage func(*Store, Hit)

// stages lists the aggregation steps in execution order.
var stages = []stage{
	recordRecentPath,
	recordRecentSize,
	recordRecentText,
	countTopSize,
	countTopReferrer,
}

// Pipeline runs the aggregation stages for every accepted image request.
type Pipeline struct {
	store *Store
}

// NewPipeline creates a pipeline writing into store.
func NewPipeline(store *Store) *Pipeline {
	return &Pipeline{store: store}
}

// Store returns the store the pipeline writes into.
func (p *Pipeline) Store() *Store {
	return p.store
}

// Record applies all stages in order. Stages never fail; skipping rules
// (empty text, absent referrer) are handled per stage.
func (p *Pipeline) Record(hit Hit) {
	for _, st := range stages {
		st(p.store, hit)
	}
}

func recordRecentPath(s *Store, h Hit) {
	s.PushPath(h.CanonicalURL())
}

func recordRecentSize(s *Store, h Hit) {
	s.PushSize(h.Size)
}

func recordRecentText(s *Store, h Hit) {
	if !h.HasText || h.Text == "" {
		return
	}
	s.PushText(h.Text)
}

func countTopSize(s *Store, h Hit) {
	s.CountSize(h.Size)
}

func countTopReferrer(s *Store, h Hit) {
	if h.Referrer == "" {
		return
	}
	s.CountReferrer(h.Referrer)
}
