package service

import (
	"context"
	"sync"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform"
)

// fakeMembership records every call so tests can assert on call counts
// (e.g. denial must never reach the executor's collaborator).
type fakeMembership struct {
	members map[string]platform.Member

	fetchErr  error
	addErr    error
	removeErr error
	createErr error

	fetchCalls  int
	addCalls    int
	removeCalls int
	createCalls int

	lastAddedRole    domain.RoleID
	lastRemovedRole  domain.RoleID
	lastCreateName   string
	lastCreateReason string
}

func (f *fakeMembership) FetchMember(_ context.Context, userID string) (platform.Member, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return platform.Member{}, f.fetchErr
	}
	m, ok := f.members[userID]
	if !ok {
		return platform.Member{}, platform.ErrNotFound
	}
	return m, nil
}

func (f *fakeMembership) AddRole(_ context.Context, _ string, role domain.RoleID) error {
	f.addCalls++
	f.lastAddedRole = role
	return f.addErr
}

func (f *fakeMembership) RemoveRole(_ context.Context, _ string, role domain.RoleID) error {
	f.removeCalls++
	f.lastRemovedRole = role
	return f.removeErr
}

func (f *fakeMembership) CreateRole(_ context.Context, name, reason string) (domain.RoleID, string, error) {
	f.createCalls++
	f.lastCreateName = name
	f.lastCreateReason = reason
	if f.createErr != nil {
		return "", "", f.createErr
	}
	return "created-id", name, nil
}

func (f *fakeMembership) calls() int {
	return f.fetchCalls + f.addCalls + f.removeCalls + f.createCalls
}

type sentMessage struct {
	to   string
	text string
}

// fakeMessenger is safe for the notifier's concurrent sink delivery.
type fakeMessenger struct {
	mu      sync.Mutex
	directs []sentMessage
	posts   []sentMessage

	// directErr/postErr, when set, fail deliveries to the given recipient.
	directErr map[string]error
	postErr   map[string]error
}

func (f *fakeMessenger) SendDirect(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directs = append(f.directs, sentMessage{to: userID, text: text})
	if err, ok := f.directErr[userID]; ok {
		return err
	}
	return nil
}

func (f *fakeMessenger) PostToChannel(_ context.Context, channelID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, sentMessage{to: channelID, text: text})
	if err, ok := f.postErr[channelID]; ok {
		return err
	}
	return nil
}

func (f *fakeMessenger) directsTo(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, m := range f.directs {
		if m.to == userID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

func (f *fakeMessenger) postsTo(channelID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, m := range f.posts {
		if m.to == channelID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

type fakeReplier struct {
	err error

	replies   []string
	ephemeral []bool
}

func (f *fakeReplier) Reply(_ context.Context, text string, ephemeral bool) error {
	f.replies = append(f.replies, text)
	f.ephemeral = append(f.ephemeral, ephemeral)
	return f.err
}
