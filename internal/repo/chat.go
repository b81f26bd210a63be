// internal/repo/chat.go
package repo

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/state"
)

// BroadcastChannelID is the single shared thread every account can read
// and post to.
const BroadcastChannelID = "broadcast"

const directPrefix = "dm:"

// DirectThreadID derives the canonical id for a two-party thread. It is
// order-independent: both participants resolve to the same thread no
// matter who opens it first.
func DirectThreadID(a, b string) string {
	pa, pb := normalizeEmail(a), normalizeEmail(b)
	if pa > pb {
		pa, pb = pb, pa
	}
	return directPrefix + pa + "|" + pb
}

// directParticipants parses a dm thread id back into its two emails.
func directParticipants(threadID string) (string, string, bool) {
	if !strings.HasPrefix(threadID, directPrefix) {
		return "", "", false
	}
	pair := strings.SplitN(strings.TrimPrefix(threadID, directPrefix), "|", 2)
	if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
		return "", "", false
	}
	return pair[0], pair[1], true
}

// chatState is the persisted shape: known channel ids plus the full
// append-only message log.
type chatState struct {
	Channels []string             `json:"channels"`
	Messages []models.ChatMessage `json:"messages"`
}

// ChatRepo holds the broadcast channel and the pairwise direct threads.
// The log is append-only: no edit, no delete.
type ChatRepo struct {
	mu    sync.RWMutex
	store state.Store
	state chatState
	nowFn func() time.Time
}

func newChatRepo(ctx context.Context, store state.Store) (*ChatRepo, error) {
	r := &ChatRepo{store: store, nowFn: time.Now}
	if err := hydrate(ctx, store, state.BucketChat, &r.state); err != nil {
		return nil, err
	}
	if len(r.state.Channels) == 0 {
		r.state.Channels = []string{BroadcastChannelID}
	}
	return r, nil
}

// Post appends a message to the thread. Direct threads only accept posts
// from their two participants; the broadcast channel accepts everyone.
func (r *ChatRepo) Post(ctx context.Context, threadID, text string, author models.Account) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, models.ErrEmptyMessage
	}
	if threadID != BroadcastChannelID {
		a, b, ok := directParticipants(threadID)
		if !ok {
			return models.ChatMessage{}, models.ErrNotFound
		}
		if author.Email != a && author.Email != b {
			return models.ChatMessage{}, models.ErrNotAuthorized
		}
	}
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		ChannelID: threadID,
		Text:      text,
		Timestamp: r.nowFn(),
		User: models.ChatAuthor{
			Email: author.Email,
			Name:  author.Name,
			Role:  author.Role,
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	next := chatState{
		Channels: append([]string(nil), r.state.Channels...),
		Messages: append(append([]models.ChatMessage(nil), r.state.Messages...), msg),
	}
	if !containsString(next.Channels, threadID) {
		next.Channels = append(next.Channels, threadID)
	}
	if err := persist(ctx, r.store, state.BucketChat, next); err != nil {
		return models.ChatMessage{}, err
	}
	r.state = next
	slog.DebugContext(ctx, "message posted", "thread_id", threadID, "author", author.Email)
	return msg, nil
}

// Thread returns all messages for the id, ascending by timestamp with
// ties kept in insertion order.
func (r *ChatRepo) Thread(ctx context.Context, threadID string) []models.ChatMessage {
	r.mu.RLock()
	out := make([]models.ChatMessage, 0, len(r.state.Messages))
	for _, m := range r.state.Messages {
		if m.ChannelID == threadID {
			out = append(out, m)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// Threads lists the channels visible to the account: the broadcast
// channel plus any direct thread it participates in.
func (r *ChatRepo) Threads(ctx context.Context, forEmail string) []string {
	email := normalizeEmail(forEmail)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.state.Channels))
	for _, id := range r.state.Channels {
		if id == BroadcastChannelID {
			out = append(out, id)
			continue
		}
		if a, b, ok := directParticipants(id); ok && (a == email || b == email) {
			out = append(out, id)
		}
	}
	return out
}

// CanRead reports whether the account may read the thread.
func (r *ChatRepo) CanRead(threadID, forEmail string) bool {
	if threadID == BroadcastChannelID {
		return true
	}
	a, b, ok := directParticipants(threadID)
	if !ok {
		return false
	}
	email := normalizeEmail(forEmail)
	return a == email || b == email
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}
