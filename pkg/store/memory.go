package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and local development. It
// reproduces the backend contract faithfully: full-replacement snapshot
// fan-out, array membership primitives, server-assigned timestamps, and a
// denial error kept distinct from empty results. Fault injection hooks let
// tests simulate denied reads and failing writes.
type Memory struct {
	mu       sync.Mutex
	cols     map[string]*memCollection
	denied   []string
	failures map[string]error
	qWatch   map[int]*queryWatcher
	docWatch map[int]*docWatcher
	nextID   int
	now      func() time.Time
}

type memCollection struct {
	docs  map[string]map[string]any
	order []string
}

type queryWatcher struct {
	q  Query
	ch chan QueryEvent
}

type docWatcher struct {
	path  string
	docID string
	ch    chan DocEvent
}

// NewMemory initializes an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cols:     make(map[string]*memCollection),
		failures: make(map[string]error),
		qWatch:   make(map[int]*queryWatcher),
		docWatch: make(map[int]*docWatcher),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source for tests.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Deny marks every path with the given prefix as read-denied. Active
// watchers on matching paths receive a denial event immediately.
func (m *Memory) Deny(pathPrefix string) {
	m.mu.Lock()
	m.denied = append(m.denied, pathPrefix)
	m.rebroadcastLocked(pathPrefix)
	m.mu.Unlock()
}

// Allow clears a denial and re-emits current snapshots to affected watchers.
func (m *Memory) Allow(pathPrefix string) {
	m.mu.Lock()
	kept := m.denied[:0]
	for _, p := range m.denied {
		if p != pathPrefix {
			kept = append(kept, p)
		}
	}
	m.denied = kept
	m.rebroadcastLocked(pathPrefix)
	m.mu.Unlock()
}

// FailWrites makes every write whose path starts with the prefix fail.
func (m *Memory) FailWrites(pathPrefix string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[pathPrefix] = err
}

// ClearWriteFailures removes all injected write failures.
func (m *Memory) ClearWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = make(map[string]error)
}

func (m *Memory) Get(ctx context.Context, path, id string) (Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deniedLocked(path) {
		return nil, ErrPermissionDenied
	}
	col, ok := m.cols[path]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := col.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &memDoc{id: id, data: deepCopyMap(data)}, nil
}

func (m *Memory) Set(ctx context.Context, path, id string, data any) error {
	fields, err := m.normalizeTop(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.writeErrLocked(path, id); err != nil {
		m.mu.Unlock()
		return err
	}
	col := m.colLocked(path)
	if _, exists := col.docs[id]; !exists {
		col.order = append(col.order, id)
	}
	col.docs[id] = fields
	m.notifyLocked(path, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Merge(ctx context.Context, path, id string, fields map[string]any) error {
	norm, err := m.normalizeTop(fields)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.writeErrLocked(path, id); err != nil {
		m.mu.Unlock()
		return err
	}
	col := m.colLocked(path)
	existing, ok := col.docs[id]
	if !ok {
		col.order = append(col.order, id)
		existing = make(map[string]any)
	}
	for k, v := range norm {
		existing[k] = v
	}
	col.docs[id] = existing
	m.notifyLocked(path, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Update(ctx context.Context, path, id string, fields map[string]any) error {
	norm, err := m.normalizeTop(fields)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.writeErrLocked(path, id); err != nil {
		m.mu.Unlock()
		return err
	}
	col, ok := m.cols[path]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	existing, ok := col.docs[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	for k, v := range norm {
		existing[k] = v
	}
	m.notifyLocked(path, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Add(ctx context.Context, path string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := m.Set(ctx, path, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Memory) Delete(ctx context.Context, path, id string) error {
	m.mu.Lock()
	if err := m.writeErrLocked(path, id); err != nil {
		m.mu.Unlock()
		return err
	}
	if col, ok := m.cols[path]; ok {
		delete(col.docs, id)
		kept := col.order[:0]
		for _, d := range col.order {
			if d != id {
				kept = append(kept, d)
			}
		}
		col.order = kept
	}
	m.notifyLocked(path, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ArrayUnion(ctx context.Context, path, id, field string, values ...any) error {
	return m.mutateArray(path, id, field, func(arr []any) []any {
		for _, v := range values {
			nv := m.normalizeValue(v)
			present := false
			for _, cur := range arr {
				if reflect.DeepEqual(cur, nv) {
					present = true
					break
				}
			}
			if !present {
				arr = append(arr, nv)
			}
		}
		return arr
	})
}

func (m *Memory) ArrayRemove(ctx context.Context, path, id, field string, values ...any) error {
	return m.mutateArray(path, id, field, func(arr []any) []any {
		kept := arr[:0]
		for _, cur := range arr {
			remove := false
			for _, v := range values {
				if reflect.DeepEqual(cur, m.normalizeValue(v)) {
					remove = true
					break
				}
			}
			if !remove {
				kept = append(kept, cur)
			}
		}
		return kept
	})
}

func (m *Memory) mutateArray(path, id, field string, fn func([]any) []any) error {
	m.mu.Lock()
	if err := m.writeErrLocked(path, id); err != nil {
		m.mu.Unlock()
		return err
	}
	col, ok := m.cols[path]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	doc, ok := col.docs[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	var arr []any
	if cur, ok := doc[field].([]any); ok {
		arr = cur
	}
	doc[field] = fn(arr)
	m.notifyLocked(path, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) WatchDoc(ctx context.Context, path, id string) <-chan DocEvent {
	ch := make(chan DocEvent, 16)
	m.mu.Lock()
	wid := m.nextID
	m.nextID++
	m.docWatch[wid] = &docWatcher{path: path, docID: id, ch: ch}
	pushDoc(ch, m.docEventLocked(path, id))
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.docWatch, wid)
		close(ch)
		m.mu.Unlock()
	}()
	return ch
}

func (m *Memory) WatchQuery(ctx context.Context, q Query) <-chan QueryEvent {
	ch := make(chan QueryEvent, 16)
	m.mu.Lock()
	wid := m.nextID
	m.nextID++
	m.qWatch[wid] = &queryWatcher{q: q, ch: ch}
	pushQuery(ch, m.queryEventLocked(q))
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.qWatch, wid)
		close(ch)
		m.mu.Unlock()
	}()
	return ch
}

func (m *Memory) Close() error { return nil }

func (m *Memory) colLocked(path string) *memCollection {
	col, ok := m.cols[path]
	if !ok {
		col = &memCollection{docs: make(map[string]map[string]any)}
		m.cols[path] = col
	}
	return col
}

func (m *Memory) deniedLocked(path string) bool {
	for _, p := range m.denied {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (m *Memory) writeErrLocked(path, id string) error {
	full := path + "/" + id
	for prefix, err := range m.failures {
		if strings.HasPrefix(path, prefix) || strings.HasPrefix(full, prefix) {
			return err
		}
	}
	return nil
}

// notifyLocked re-evaluates and delivers snapshots for every watcher on the
// mutated path. Delivery never blocks (see pushQuery), so it is safe to run
// while holding the store lock, which also serializes sends against channel
// close on teardown.
func (m *Memory) notifyLocked(path, docID string) {
	for _, w := range m.qWatch {
		if w.q.Path == path {
			pushQuery(w.ch, m.queryEventLocked(w.q))
		}
	}
	for _, w := range m.docWatch {
		if w.path == path && w.docID == docID {
			pushDoc(w.ch, m.docEventLocked(path, docID))
		}
	}
}

func (m *Memory) rebroadcastLocked(pathPrefix string) {
	for _, w := range m.qWatch {
		if strings.HasPrefix(w.q.Path, pathPrefix) {
			pushQuery(w.ch, m.queryEventLocked(w.q))
		}
	}
	for _, w := range m.docWatch {
		if strings.HasPrefix(w.path, pathPrefix) {
			pushDoc(w.ch, m.docEventLocked(w.path, w.docID))
		}
	}
}

func (m *Memory) docEventLocked(path, id string) DocEvent {
	if m.deniedLocked(path) {
		return DocEvent{Err: ErrPermissionDenied}
	}
	col, ok := m.cols[path]
	if !ok {
		return DocEvent{Exists: false}
	}
	data, ok := col.docs[id]
	if !ok {
		return DocEvent{Exists: false}
	}
	return DocEvent{Doc: &memDoc{id: id, data: deepCopyMap(data)}, Exists: true}
}

func (m *Memory) queryEventLocked(q Query) QueryEvent {
	if m.deniedLocked(q.Path) {
		return QueryEvent{Err: ErrPermissionDenied}
	}
	col, ok := m.cols[q.Path]
	if !ok {
		return QueryEvent{Docs: []Doc{}}
	}
	docs := make([]Doc, 0, len(col.order))
	for _, id := range col.order {
		data, ok := col.docs[id]
		if !ok || !matches(data, q.Where) {
			continue
		}
		docs = append(docs, &memDoc{id: id, data: deepCopyMap(data)})
	}
	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a := docs[i].Data()[q.OrderBy]
			b := docs[j].Data()[q.OrderBy]
			if q.Desc {
				return compareValues(a, b) > 0
			}
			return compareValues(a, b) < 0
		})
	}
	return QueryEvent{Docs: docs}
}

func matches(data map[string]any, conds []Cond) bool {
	for _, c := range conds {
		if c.Op != "==" {
			return false
		}
		if !reflect.DeepEqual(data[c.Field], c.Value) {
			return false
		}
	}
	return true
}

func compareValues(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// pushQuery delivers the event without blocking. Snapshots are full
// replacements, so when the consumer lags the oldest pending event is
// dropped in favor of the latest.
func pushQuery(ch chan QueryEvent, ev QueryEvent) {
	for {
		select {
		case ch <- ev:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func pushDoc(ch chan DocEvent, ev DocEvent) {
	for {
		select {
		case ch <- ev:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// normalizeTop converts a write payload into stored field form. Maps keep
// time.Time values intact and translate the ServerTimestamp sentinel; any
// other payload goes through a JSON roundtrip.
func (m *Memory) normalizeTop(data any) (map[string]any, error) {
	if fields, ok := data.(map[string]any); ok {
		out := make(map[string]any, len(fields))
		for k, v := range fields {
			out[k] = m.normalizeValue(v)
		}
		return out, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

func (m *Memory) normalizeValue(v any) any {
	if v == ServerTimestamp {
		return m.now()
	}
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			out[k] = m.normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = m.normalizeValue(inner)
		}
		return out
	case time.Time, string, bool, int, int64, float64, nil:
		return tv
	default:
		raw, err := json.Marshal(tv)
		if err != nil {
			return fmt.Sprint(tv)
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Sprint(tv)
		}
		return out
	}
}

func deepCopyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return deepCopyMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = deepCopyValue(inner)
		}
		return out
	default:
		return tv
	}
}

type memDoc struct {
	id   string
	data map[string]any
}

func (d *memDoc) ID() string { return d.id }

func (d *memDoc) Data() map[string]any { return d.data }

// DataTo decodes through JSON, which honors the same field names as the
// firestore tags on the domain structs.
func (d *memDoc) DataTo(v any) error {
	raw, err := json.Marshal(d.data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
