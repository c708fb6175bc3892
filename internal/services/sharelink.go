package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stormarket/stormarket/internal/auth"
	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/config"
	"github.com/stormarket/stormarket/internal/cryptox"
	"github.com/stormarket/stormarket/internal/metrics"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/repositories/repomanager"
)

// CreateShareLinkRequest describes a new share link.
type CreateShareLinkRequest struct {
	DealID        string
	Password      string
	MaxAccess     int
	AllowDownload bool
	Validity      time.Duration // zero means the configured default
}

// ShareLinkService manages sharing handles for stored files. Links live in
// process memory only: they are a client-side convenience and are never
// persisted to the remote store. Restarting the server drops all links.
type ShareLinkService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	config *config.Config

	mu    sync.Mutex
	links map[string]*shareEntry // link ID -> entry
}

type shareEntry struct {
	ownerID string
	link    *models.ShareLink
}

func NewShareLinkService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *ShareLinkService {
	return &ShareLinkService{
		db:     db,
		rm:     rm,
		config: cfg,
		links:  make(map[string]*shareEntry),
	}
}

// Create builds a share link over one of the caller's deals. Unknown or
// foreign deals are a validation failure.
func (s *ShareLinkService) Create(ctx context.Context, req CreateShareLinkRequest) (*models.ShareLink, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	deal, err := s.rm.Deals(s.db).GetByID(ctx, req.DealID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown deal %q", common.ErrValidation, req.DealID)
		}
		return nil, err
	}
	if deal.UserID != userID {
		return nil, fmt.Errorf("%w: unknown deal %q", common.ErrValidation, req.DealID)
	}

	id, err := common.MakeRandHexString(8)
	if err != nil {
		return nil, err
	}

	validity := req.Validity
	if validity <= 0 {
		validity = s.config.ShareLinkValidity
	}

	now := time.Now()
	link := &models.ShareLink{
		ID:            id,
		DealID:        deal.ID,
		FileName:      deal.FileName,
		URL:           s.config.ShareBaseURL + "/" + id,
		CreatedAt:     now,
		ExpiresAt:     now.Add(validity),
		MaxAccess:     req.MaxAccess,
		AllowDownload: req.AllowDownload,
	}
	if req.Password != "" {
		link.PasswordSalt = common.GenerateRandByteArray(16)
		link.PasswordHash = cryptox.DeriveKey([]byte(req.Password), link.PasswordSalt)
	}

	s.mu.Lock()
	s.links[id] = &shareEntry{ownerID: userID, link: link}
	s.mu.Unlock()

	metrics.ShareLinksCreated.Inc()
	return link, nil
}

// List returns the caller's links, newest first.
func (s *ShareLinkService) List(ctx context.Context) ([]*models.ShareLink, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.ShareLink
	for _, e := range s.links {
		if e.ownerID == userID {
			result = append(result, e.link)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Revoke removes one of the caller's links. Revoking an unknown link is
// common.ErrNotFound.
func (s *ShareLinkService) Revoke(ctx context.Context, id string) error {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.links[id]
	if !ok || e.ownerID != userID {
		return common.ErrNotFound
	}
	delete(s.links, id)
	return nil
}

// Resolve checks a link for access and counts the access. It fails closed:
// expired, exhausted, and password-mismatched links all refuse. Resolve is
// unauthenticated; the link ID is the capability.
func (s *ShareLinkService) Resolve(_ context.Context, id, password string) (*models.ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.links[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	link := e.link

	if time.Now().After(link.ExpiresAt) {
		return nil, common.ErrShareLinkExpired
	}
	if link.MaxAccess > 0 && link.AccessCount >= link.MaxAccess {
		return nil, common.ErrShareLinkExhausted
	}
	if len(link.PasswordHash) > 0 &&
		!cryptox.VerifyPassword([]byte(password), link.PasswordSalt, link.PasswordHash) {
		return nil, common.ErrSharePassword
	}

	link.AccessCount++
	return link, nil
}
