// Package export serializes the full tracked state to an encrypted blob and
// restores it. Payloads are JSON encrypted with a fernet key, so a backup
// taken on one machine can be restored on another only with the same key.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/apperrors"
	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

// Snapshot is the exported state. Field names are the wire format of the
// backup blob; changing them breaks restores of older exports.
type Snapshot struct {
	Holdings      []model.Holding      `json:"holdings"`
	Trades        []model.Trade        `json:"trades"`
	PendingTrades []model.PendingTrade `json:"pendingTrades"`
	MonitorConfig model.MonitorConfig  `json:"monitorConfig"`
	ExportedAt    string               `json:"exportedAt"`
}

// Exporter encrypts and decrypts state snapshots.
type Exporter struct {
	key *fernet.Key
}

// New creates an Exporter from a base64url-encoded fernet key.
func New(encodedKey string) (*Exporter, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid export key: %w", err)
	}
	return &Exporter{key: key}, nil
}

// GenerateKey returns a fresh encoded fernet key, for first-run setups
// without an EXPORT_KEY configured.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate export key: %w", err)
	}
	return key.Encode(), nil
}

// Encrypt seals a snapshot, stamping ExportedAt.
func (e *Exporter) Encrypt(snapshot Snapshot) (string, error) {
	snapshot.ExportedAt = time.Now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	token, err := fernet.EncryptAndSign(raw, e.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToExport, err)
	}
	return string(token), nil
}

// Decrypt verifies and opens an exported blob. A wrong key, tampered token
// or malformed payload all surface as ErrFailedToImport.
func (e *Exporter) Decrypt(data string) (*Snapshot, error) {
	raw := fernet.VerifyAndDecrypt([]byte(data), 0, []*fernet.Key{e.key})
	if raw == nil {
		return nil, fmt.Errorf("%w: token verification failed", apperrors.ErrFailedToImport)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToImport, err)
	}
	return &snapshot, nil
}
