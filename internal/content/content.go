// Package content manages the shared site-content singleton: one remote
// document holding all public-page copy and the ad catalog, merged over
// compiled-in defaults so partial documents never blank out a section.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"trippcouch/pkg/domain"
	"trippcouch/pkg/store"
)

const (
	colSiteContent = "site_content"
	docMain        = "main"
)

// Manager holds the current site content and keeps it synced against the
// remote singleton document. Reads always succeed: before the first remote
// snapshot, and whenever the document is absent, the defaults apply.
type Manager struct {
	store store.Store
	log   *slog.Logger

	mu   sync.RWMutex
	data domain.SiteData
}

// NewManager starts with the compiled-in defaults.
func NewManager(st store.Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: st, log: log, data: Defaults()}
}

// Data returns an independent copy of the current site content.
func (m *Manager) Data() domain.SiteData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.data)
}

// NewDraft is Data under a name that states the intent: a deep copy safe to
// edit and later pass to Update.
func (m *Manager) NewDraft() domain.SiteData {
	return m.Data()
}

// Watch subscribes to the remote document and folds every snapshot into the
// local state until ctx is done. A missing document keeps the defaults; a
// stream error keeps the last good state.
func (m *Manager) Watch(ctx context.Context) {
	events := m.store.WatchDoc(ctx, colSiteContent, docMain)
	for ev := range events {
		switch {
		case ev.Err != nil:
			m.log.Error("site content stream error", "err", ev.Err)
		case !ev.Exists:
			m.log.Warn("no remote site content found, using defaults")
			m.mu.Lock()
			m.data = Defaults()
			m.mu.Unlock()
		default:
			merged, err := mergeOverDefaults(ev.Doc.Data())
			if err != nil {
				m.log.Error("failed to decode site content", "err", err)
				continue
			}
			m.mu.Lock()
			m.data = merged
			m.mu.Unlock()
		}
	}
}

// Update applies the new content locally first and then replaces the whole
// remote document. A failed write keeps the local state; concurrent editors
// race whole documents, last write wins.
func (m *Manager) Update(ctx context.Context, data domain.SiteData) error {
	m.mu.Lock()
	m.data = clone(data)
	m.mu.Unlock()

	if err := m.store.Set(ctx, colSiteContent, docMain, data); err != nil {
		m.log.Error("failed to publish site content", "err", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// UpdateAdPlatform replaces only the ad-platform section, publishing the
// rest of the current content unchanged.
func (m *Manager) UpdateAdPlatform(ctx context.Context, platform domain.AdPlatform) error {
	next := m.Data()
	next.AdPlatform = platform
	return m.Update(ctx, next)
}

// ResetToDefault overwrites the remote document with the compiled-in
// template.
func (m *Manager) ResetToDefault(ctx context.Context) error {
	return m.Update(ctx, Defaults())
}

// mergeOverDefaults lays a remote document over the default content,
// recursing through nested sections. Fields the document carries win; fields
// it omits keep their default. Arrays replace wholesale.
func mergeOverDefaults(remote map[string]any) (domain.SiteData, error) {
	base, err := toMap(defaultSite)
	if err != nil {
		return domain.SiteData{}, err
	}
	deepMerge(base, remote)
	raw, err := json.Marshal(base)
	if err != nil {
		return domain.SiteData{}, err
	}
	var out domain.SiteData
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.SiteData{}, err
	}
	return out, nil
}

func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if cur, ok := dst[k].(map[string]any); ok {
				deepMerge(cur, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func toMap(data domain.SiteData) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// clone deep-copies site content through its JSON form. The type is plain
// data, so the roundtrip is lossless.
func clone(data domain.SiteData) domain.SiteData {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(fmt.Sprintf("content: clone marshal: %v", err))
	}
	var out domain.SiteData
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("content: clone unmarshal: %v", err))
	}
	return out
}
