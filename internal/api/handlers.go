package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stormarket/stormarket/internal/common"
	"github.com/stormarket/stormarket/internal/models"
	"github.com/stormarket/stormarket/internal/services"
)

type dealRequest struct {
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	ProviderID string `json:"provider_id"`
}

type batchRequest struct {
	Files []dealRequest `json:"files"`
}

type dealResponse struct {
	ID            string    `json:"id"`
	FileCID       string    `json:"file_cid"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	FileType      string    `json:"file_type,omitempty"`
	TotalCost     float64   `json:"total_cost"`
	Status        string    `json:"status"`
	DerivedStatus string    `json:"derived_status"`
	Retrievable   bool      `json:"retrievable"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	ProviderID    string    `json:"provider_id,omitempty"`
}

func toDealResponse(d *models.StorageDeal) dealResponse {
	now := time.Now()
	return dealResponse{
		ID:            d.ID,
		FileCID:       d.FileCID,
		FileName:      d.FileName,
		FileSize:      d.FileSize,
		FileType:      d.FileType,
		TotalCost:     d.TotalCost,
		Status:        string(d.Status),
		DerivedStatus: string(d.DerivedStatus(now)),
		Retrievable:   d.Retrievable(now),
		CreatedAt:     d.CreatedAt,
		ExpiresAt:     d.ExpiresAt,
		ProviderID:    d.ProviderID,
	}
}

func (r dealRequest) toServiceRequest() services.CreateDealRequest {
	return services.CreateDealRequest{
		FileName:   r.FileName,
		FileSize:   r.FileSize,
		FileType:   r.FileType,
		ProviderID: r.ProviderID,
	}
}

type uploadResponse struct {
	StorageKey string `json:"storage_key"`
	UploadURL  string `json:"upload_url"`
}

func (s *Server) handleUploadPrepare(c *fiber.Ctx) error {
	key, url, err := s.deals.PrepareUpload(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(uploadResponse{StorageKey: key, UploadURL: url})
}

func (s *Server) handleDealList(c *fiber.Ctx) error {
	deals, err := s.deals.List(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	result := make([]dealResponse, 0, len(deals))
	for _, d := range deals {
		result = append(result, toDealResponse(d))
	}
	return c.JSON(result)
}

func (s *Server) handleDealCreate(c *fiber.Ctx) error {
	var req dealRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, common.ErrValidation)
	}
	deal, err := s.deals.Create(c.UserContext(), req.toServiceRequest())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDealResponse(deal))
}

func (s *Server) handleDealCreateBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, common.ErrValidation)
	}
	reqs := make([]services.CreateDealRequest, 0, len(req.Files))
	for _, f := range req.Files {
		reqs = append(reqs, f.toServiceRequest())
	}
	deals, err := s.deals.CreateBatch(c.UserContext(), reqs)
	if err != nil {
		return s.respondError(c, err)
	}
	result := make([]dealResponse, 0, len(deals))
	for _, d := range deals {
		result = append(result, toDealResponse(d))
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (s *Server) handleDealDelete(c *fiber.Ctx) error {
	if err := s.deals.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type retrieveResponse struct {
	RetrievalID string  `json:"retrieval_id"`
	DealID      string  `json:"deal_id"`
	Cost        float64 `json:"cost"`
	DownloadURL string  `json:"download_url"`
}

func (s *Server) handleDealRetrieve(c *fiber.Ctx) error {
	result, err := s.deals.Retrieve(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(retrieveResponse{
		RetrievalID: result.Retrieval.ID,
		DealID:      result.Retrieval.DealID,
		Cost:        result.Retrieval.RetrievalCost,
		DownloadURL: result.DownloadURL,
	})
}

type retrievalResponse struct {
	ID        string    `json:"id"`
	DealID    string    `json:"deal_id"`
	Cost      float64   `json:"cost"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

func (s *Server) handleRetrievalList(c *fiber.Ctx) error {
	items, err := s.deals.Retrievals(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	result := make([]retrievalResponse, 0, len(items))
	for _, r := range items {
		result = append(result, retrievalResponse{
			ID: r.ID, DealID: r.DealID, Cost: r.RetrievalCost,
			Status: r.Status, StartedAt: r.StartedAt,
		})
	}
	return c.JSON(result)
}

type walletResponse struct {
	Balance     float64 `json:"balance"`
	TotalEarned float64 `json:"total_earned"`
	TotalSpent  float64 `json:"total_spent"`
}

func (s *Server) handleWalletGet(c *fiber.Ctx) error {
	wallet, err := s.wallet.Get(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(walletResponse{
		Balance:     wallet.Balance,
		TotalEarned: wallet.TotalEarned,
		TotalSpent:  wallet.TotalSpent,
	})
}

type providerResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	ReputationScore    float64 `json:"reputation_score"`
	TotalStorageGB     float64 `json:"total_storage_gb"`
	AvailableStorageGB float64 `json:"available_storage_gb"`
	PricePerGB         float64 `json:"price_per_gb"`
	UptimePercentage   float64 `json:"uptime_percentage"`
}

func (s *Server) handleProviderList(c *fiber.Ctx) error {
	items, err := s.network.Providers(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	result := make([]providerResponse, 0, len(items))
	for _, p := range items {
		result = append(result, providerResponse{
			ID: p.ID, Name: p.Name, Location: p.Location,
			ReputationScore: p.ReputationScore, TotalStorageGB: p.TotalStorageGB,
			AvailableStorageGB: p.AvailableStorageGB, PricePerGB: p.PricePerGB,
			UptimePercentage: p.UptimePercentage,
		})
	}
	return c.JSON(result)
}

type statsResponse struct {
	TotalNodes         int64     `json:"total_nodes"`
	ActiveDeals        int64     `json:"active_deals"`
	TotalStorageUsedGB float64   `json:"total_storage_used_gb"`
	NetworkHealthScore float64   `json:"network_health_score"`
	AvgResponseTimeMs  float64   `json:"avg_response_time_ms"`
	RecordedAt         time.Time `json:"recorded_at"`
}

func (s *Server) handleNetworkStats(c *fiber.Ctx) error {
	snapshot, err := s.network.Stats(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(statsResponse{
		TotalNodes:         snapshot.TotalNodes,
		ActiveDeals:        snapshot.ActiveDeals,
		TotalStorageUsedGB: snapshot.TotalStorageUsedGB,
		NetworkHealthScore: snapshot.NetworkHealthScore,
		AvgResponseTimeMs:  snapshot.AvgResponseTimeMs,
		RecordedAt:         snapshot.RecordedAt,
	})
}

type refreshResponse struct {
	DealsActivated int64 `json:"deals_activated"`
	DealsExpired   int64 `json:"deals_expired"`
}

func (s *Server) handleNetworkRefresh(c *fiber.Ctx) error {
	activated, expired, err := s.network.RefreshDealStatuses(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(refreshResponse{DealsActivated: activated, DealsExpired: expired})
}

type shareCreateRequest struct {
	DealID        string `json:"deal_id"`
	Password      string `json:"password"`
	MaxAccess     int    `json:"max_access"`
	AllowDownload bool   `json:"allow_download"`
	ValidityHours int    `json:"validity_hours"`
}

type shareResponse struct {
	ID            string    `json:"id"`
	DealID        string    `json:"deal_id"`
	FileName      string    `json:"file_name"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	AccessCount   int       `json:"access_count"`
	MaxAccess     int       `json:"max_access"`
	AllowDownload bool      `json:"allow_download"`
	HasPassword   bool      `json:"has_password"`
}

func toShareResponse(l *models.ShareLink) shareResponse {
	return shareResponse{
		ID:            l.ID,
		DealID:        l.DealID,
		FileName:      l.FileName,
		URL:           l.URL,
		CreatedAt:     l.CreatedAt,
		ExpiresAt:     l.ExpiresAt,
		AccessCount:   l.AccessCount,
		MaxAccess:     l.MaxAccess,
		AllowDownload: l.AllowDownload,
		HasPassword:   len(l.PasswordHash) > 0,
	}
}

func (s *Server) handleShareCreate(c *fiber.Ctx) error {
	var req shareCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, common.ErrValidation)
	}
	link, err := s.shares.Create(c.UserContext(), services.CreateShareLinkRequest{
		DealID:        req.DealID,
		Password:      req.Password,
		MaxAccess:     req.MaxAccess,
		AllowDownload: req.AllowDownload,
		Validity:      time.Duration(req.ValidityHours) * time.Hour,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShareResponse(link))
}

func (s *Server) handleShareList(c *fiber.Ctx) error {
	links, err := s.shares.List(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	result := make([]shareResponse, 0, len(links))
	for _, l := range links {
		result = append(result, toShareResponse(l))
	}
	return c.JSON(result)
}

func (s *Server) handleShareRevoke(c *fiber.Ctx) error {
	if err := s.shares.Revoke(c.UserContext(), c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type shareResolveRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleShareResolve(c *fiber.Ctx) error {
	var req shareResolveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return s.respondError(c, common.ErrValidation)
		}
	}
	link, err := s.shares.Resolve(c.UserContext(), c.Params("id"), req.Password)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(toShareResponse(link))
}

type backupRequest struct {
	AutoBackup        bool   `json:"auto_backup"`
	Frequency         string `json:"frequency"`
	ReplicationFactor int    `json:"replication_factor"`
	RetentionPeriod   string `json:"retention_period"`
}

type backupResponse struct {
	AutoBackup        bool      `json:"auto_backup"`
	Frequency         string    `json:"frequency"`
	ReplicationFactor int       `json:"replication_factor"`
	RetentionPeriod   string    `json:"retention_period"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

func (s *Server) handleBackupGet(c *fiber.Ctx) error {
	policy, err := s.backup.Get(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(backupResponse{
		AutoBackup:        policy.AutoBackup,
		Frequency:         policy.Frequency,
		ReplicationFactor: policy.ReplicationFactor,
		RetentionPeriod:   policy.RetentionPeriod,
		UpdatedAt:         policy.UpdatedAt,
	})
}

func (s *Server) handleBackupSave(c *fiber.Ctx) error {
	var req backupRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, common.ErrValidation)
	}
	policy, err := s.backup.Save(c.UserContext(), &models.BackupPolicy{
		AutoBackup:        req.AutoBackup,
		Frequency:         req.Frequency,
		ReplicationFactor: req.ReplicationFactor,
		RetentionPeriod:   req.RetentionPeriod,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(backupResponse{
		AutoBackup:        policy.AutoBackup,
		Frequency:         policy.Frequency,
		ReplicationFactor: policy.ReplicationFactor,
		RetentionPeriod:   policy.RetentionPeriod,
		UpdatedAt:         policy.UpdatedAt,
	})
}
