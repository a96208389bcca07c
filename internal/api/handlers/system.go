package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pokebinder/pokebinder/internal/api/response"
	"github.com/pokebinder/pokebinder/internal/storage"
)

// Backuper produces database backups.
type Backuper interface {
	Backup(config *storage.BackupConfig) (string, error)
}

// SystemHandler handles system status and maintenance requests.
type SystemHandler struct {
	backup    Backuper
	backupDir string
	dbPath    string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(backup Backuper, backupDir, dbPath, version string) *SystemHandler {
	return &SystemHandler{
		backup:    backup,
		backupDir: backupDir,
		dbPath:    dbPath,
		version:   version,
		startTime: time.Now(),
	}
}

// StatusResponse reports server health details.
type StatusResponse struct {
	Version      string `json:"version"`
	DatabasePath string `json:"databasePath"`
	Uptime       string `json:"uptime"`
}

// GetStatus returns server version, database path, and uptime.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, StatusResponse{
		Version:      h.version,
		DatabasePath: h.dbPath,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
	})
}

// BackupRequest is the payload for requesting a database backup.
type BackupRequest struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
}

// BackupResponse reports where the backup was written.
type BackupResponse struct {
	Path string `json:"path"`
}

// CreateBackup snapshots the database, optionally encrypting it with a
// passphrase.
func (h *SystemHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var req BackupRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, errors.New("invalid request body"))
			return
		}
	}

	path, err := h.backup.Backup(&storage.BackupConfig{
		BackupDir:  h.backupDir,
		BackupName: req.Name,
		Passphrase: req.Passphrase,
	})
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, BackupResponse{Path: path})
}
