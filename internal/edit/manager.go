package edit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"lingua-reader/internal/domain"
)

// MaxParagraphLen is the maximum paragraph length accepted by Save, in runes.
const MaxParagraphLen = 10000

// Live-region announcements surfaced through the event feed.
const (
	announceEditEnabled = "Edit mode enabled"
	announceSaved       = "Paragraph saved"
	announceCancelled   = "Edit cancelled"
)

const guardReason = "paragraph edit in progress"

// ArticleParts is the slice of the article service the edit manager needs:
// snapshotting a paragraph on entry and persisting it on save.
type ArticleParts interface {
	GetParagraph(paragraphID string) (*domain.ArticlePart, error)
	SaveParagraph(ctx context.Context, paragraphID, text string) (*domain.ArticlePart, error)
}

// Manager owns the lifecycle of editing exactly one paragraph at a time.
//
// Transitions are serialized by a mutex; user-triggered events that arrive
// while another transition holds the lock observe the settled state, never an
// intermediate one. The only asynchronous leg is the save: the manager
// releases the lock while the persistence call runs (bounded by saveTimeout)
// and settles the outcome afterwards. A cancel that arrives mid-save is
// queued and applied only if the save fails; a committed save wins.
type Manager struct {
	mu sync.Mutex

	guard  *Guard
	store  domain.HighlightStore
	parts  ArticleParts
	events domain.EventSink
	logger domain.Logger

	saveTimeout time.Duration

	session *session
}

// session is the mutable state behind the domain.EditSession snapshot.
type session struct {
	paragraphID   string
	token         string
	originalText  string
	removed       []*domain.Highlight
	state         domain.EditState
	pendingCounts domain.HighlightCounts
	pendingCancel bool
	startedAt     time.Time
}

func NewManager(
	guard *Guard,
	store domain.HighlightStore,
	parts ArticleParts,
	events domain.EventSink,
	logger domain.Logger,
	saveTimeout time.Duration,
) *Manager {
	if saveTimeout <= 0 {
		saveTimeout = 10 * time.Second
	}
	return &Manager{
		guard:       guard,
		store:       store,
		parts:       parts,
		events:      events,
		logger:      logger,
		saveTimeout: saveTimeout,
	}
}

// Start begins an edit on the given paragraph. If the paragraph carries
// highlights the session waits in pending_confirmation for the user to
// confirm their removal; otherwise it goes straight to active.
func (m *Manager) Start(paragraphID string, token string) (*domain.EditSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.logger.Warn("Edit rejected, another session active",
			"paragraph_id", paragraphID, "active_paragraph_id", m.session.paragraphID)
		return nil, domain.ErrEditInProgress
	}

	part, err := m.parts.GetParagraph(paragraphID)
	if err != nil {
		return nil, err
	}

	if !m.guard.TryLock(guardReason) {
		return nil, domain.ErrEditInProgress
	}

	sess := &session{
		paragraphID:  paragraphID,
		token:        token,
		originalText: part.Content,
		startedAt:    time.Now(),
	}

	counts := m.store.CountByParagraph(paragraphID)
	if counts.Total() == 0 {
		sess.state = domain.EditActive
		m.session = sess
		m.events.Announce(announceEditEnabled)
	} else {
		sess.state = domain.EditPendingConfirmation
		sess.pendingCounts = counts
		m.session = sess
	}

	m.logger.Info("Edit session started",
		"paragraph_id", paragraphID, "state", string(sess.state),
		"vocab_count", counts.Vocab, "sentence_count", counts.Sentence)
	return m.snapshotLocked(), nil
}

// Confirm acknowledges the highlight-removal dialog. The paragraph's
// highlights are detached (tentatively, until save) and the session becomes
// active.
func (m *Manager) Confirm() (*domain.EditSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, domain.ErrNoActiveEdit
	}
	if m.session.state != domain.EditPendingConfirmation {
		return nil, domain.ErrInvalidTransition
	}

	m.session.removed = m.store.RemoveByParagraph(m.session.paragraphID, m.session.token)
	m.session.state = domain.EditActive
	m.session.pendingCounts = domain.HighlightCounts{}
	m.events.Announce(announceEditEnabled)

	m.logger.Info("Edit confirmed, highlights removed",
		"paragraph_id", m.session.paragraphID, "removed", len(m.session.removed))
	return m.snapshotLocked(), nil
}

// Dismiss closes the confirmation dialog without entering edit mode. The
// highlight set is untouched.
func (m *Manager) Dismiss() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.ErrNoActiveEdit
	}
	if m.session.state != domain.EditPendingConfirmation {
		return domain.ErrInvalidTransition
	}

	m.logger.Info("Edit dismissed at confirmation", "paragraph_id", m.session.paragraphID)
	m.clearLocked()
	return nil
}

// Save validates the edited text and persists it. On success the session
// ends and the removed highlights are gone for good; on failure the session
// stays active so no work is lost.
func (m *Manager) Save(text string) (*domain.ArticlePart, error) {
	m.mu.Lock()

	if m.session == nil {
		m.mu.Unlock()
		return nil, domain.ErrNoActiveEdit
	}
	if m.session.state == domain.EditSaving {
		m.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}
	if m.session.state != domain.EditActive {
		m.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}

	paragraphID := m.session.paragraphID

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		m.mu.Unlock()
		m.logger.Warn("Save rejected, empty paragraph text", "paragraph_id", paragraphID, "state", string(domain.EditActive))
		return nil, domain.ErrEmptyParagraph
	}
	if utf8.RuneCountInString(trimmed) > MaxParagraphLen {
		m.mu.Unlock()
		m.logger.Warn("Save rejected, paragraph text too long",
			"paragraph_id", paragraphID, "state", string(domain.EditActive),
			"length", utf8.RuneCountInString(trimmed), "max", MaxParagraphLen)
		return nil, domain.ErrParagraphTooLong
	}

	m.session.state = domain.EditSaving
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	part, err := m.parts.SaveParagraph(ctx, paragraphID, trimmed)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.logger.Error("Paragraph save failed", err,
			"paragraph_id", paragraphID, "state", string(domain.EditSaving))
		m.events.EditFailed(paragraphID, "Failed to save paragraph")

		if m.session.pendingCancel {
			// The user cancelled while the save was in flight; the save did
			// not commit, so the cancel applies now.
			m.cancelLocked()
			return nil, fmt.Errorf("paragraph save failed: %w", err)
		}

		m.session.state = domain.EditActive
		return nil, fmt.Errorf("paragraph save failed: %w", err)
	}

	m.logger.Info("Paragraph saved", "paragraph_id", paragraphID)
	m.clearLocked()
	m.events.ParagraphUpdated(part)
	m.events.Announce(announceSaved)
	return part, nil
}

// Cancel abandons the edit. From the confirmation dialog it behaves like
// Dismiss; from active it restores the original text and the removed
// highlights; during a save it is queued until the save settles.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return domain.ErrNoActiveEdit
	}

	switch m.session.state {
	case domain.EditPendingConfirmation:
		m.logger.Info("Edit dismissed at confirmation", "paragraph_id", m.session.paragraphID)
		m.clearLocked()
		return nil
	case domain.EditActive:
		m.cancelLocked()
		return nil
	case domain.EditSaving:
		m.session.pendingCancel = true
		m.logger.Info("Cancel queued behind in-flight save", "paragraph_id", m.session.paragraphID)
		return nil
	default:
		return domain.ErrInvalidTransition
	}
}

// ParagraphLost aborts the session because the paragraph element vanished
// from the page while editing. The session is forced back to idle; no data
// recovery is attempted.
func (m *Manager) ParagraphLost(paragraphID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.session.paragraphID != paragraphID {
		return domain.ErrNoActiveEdit
	}
	if m.session.state == domain.EditSaving {
		return domain.ErrSaveInProgress
	}

	m.logger.Error("Paragraph lost during edit", domain.ErrParagraphNotFound,
		"paragraph_id", paragraphID, "state", string(m.session.state))
	m.clearLocked()
	m.events.EditFailed(paragraphID, "The paragraph was removed while editing")
	return nil
}

// State returns a snapshot of the current session, or an idle snapshot when
// no edit is in progress. Navigation and mode-switch collaborators poll this
// before starting their own transitions.
func (m *Manager) State() *domain.EditSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// cancelLocked applies cancelling semantics: restore the original text and
// re-insert the removed highlights at their original anchors.
func (m *Manager) cancelLocked() {
	sess := m.session
	sess.state = domain.EditCancelling

	if len(sess.removed) > 0 {
		m.store.Restore(sess.removed, sess.token)
	}
	m.events.EditCancelled(sess.paragraphID, sess.originalText)
	m.events.Announce(announceCancelled)

	m.logger.Info("Edit cancelled",
		"paragraph_id", sess.paragraphID, "restored", len(sess.removed))
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	m.session = nil
	m.guard.Unlock()
}

func (m *Manager) snapshotLocked() *domain.EditSession {
	if m.session == nil {
		return &domain.EditSession{State: domain.EditIdle}
	}
	removed := make([]*domain.Highlight, len(m.session.removed))
	copy(removed, m.session.removed)
	return &domain.EditSession{
		ParagraphID:       m.session.paragraphID,
		State:             m.session.state,
		OriginalText:      m.session.originalText,
		RemovedHighlights: removed,
		PendingCounts:     m.session.pendingCounts,
		StartedAt:         m.session.startedAt,
	}
}
