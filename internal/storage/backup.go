package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupManager handles database backup and restore operations.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the given database path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// BackupDir is where backups are stored. Defaults to a "backups"
	// subdirectory next to the database.
	BackupDir string

	// BackupName is the backup filename without extension. Defaults to a
	// timestamp-based name.
	BackupName string

	// Passphrase, when non-empty, encrypts the backup at rest.
	Passphrase string
}

// Backup creates a backup of the database using VACUUM INTO, which is atomic
// and does not require exclusive locks. Returns the backup file path.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = &BackupConfig{}
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupName := config.BackupName
	if backupName == "" {
		backupName = fmt.Sprintf("backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(backupDir, backupName+".db")

	sourceDB, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = sourceDB.Close() }()

	vacuumSQL := fmt.Sprintf("VACUUM INTO %q", backupPath)
	if _, err := sourceDB.Exec(vacuumSQL); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if config.Passphrase != "" {
		if err := bm.encryptFile(backupPath, config.Passphrase); err != nil {
			_ = os.Remove(backupPath)
			return "", err
		}
	}

	return backupPath, nil
}

// Restore overwrites the current database with the given backup. Callers
// must close open connections first. Encrypted backups require the
// passphrase they were created with.
func (bm *BackupManager) Restore(backupPath, passphrase string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if IsEncrypted(data) {
		if passphrase == "" {
			return fmt.Errorf("backup is encrypted: passphrase required")
		}
		if data, err = DecryptData(data, passphrase); err != nil {
			return err
		}
	}

	tempPath := bm.dbPath + ".restore.tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write restore file: %w", err)
	}

	if err := os.Rename(tempPath, bm.dbPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to replace database: %w", err)
	}

	return nil
}

// encryptFile encrypts a backup file in place.
func (bm *BackupManager) encryptFile(path, passphrase string) error {
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup for encryption: %w", err)
	}

	encrypted, err := EncryptData(plaintext, passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write encrypted backup: %w", err)
	}

	return nil
}
