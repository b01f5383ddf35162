package dal

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/evgeny-myasishchev/ledger.accounts/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

// metadataTag marks the first record that carries the allocator counter
const metadataTag = "METADATA"

var accountsHeader = []string{"number", "owner", "balance"}

type csvStorage struct {
	path string
}

func (s *csvStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup CSV storage: %v", s.path)
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to create snapshot dir %v: %v", dir, err)
	}
	return nil
}

// SaveSnapshot writes a complete snapshot to a tmp file and then
// renames it over the target, so a failed save never corrupts
// the previously persisted state
func (s *csvStorage) SaveSnapshot(ctx context.Context, snapshot *SnapshotDTO) error {
	logger.Debug(ctx, "Saving snapshot of %v accounts to %v", len(snapshot.Accounts), s.path)
	tmpPath := s.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(ErrStorageIO, "failed to create %v: %v", tmpPath, err)
	}

	writer := csv.NewWriter(file)
	records := [][]string{
		{metadataTag, strconv.FormatInt(snapshot.NextAccountNumber, 10)},
		accountsHeader,
	}
	for _, account := range snapshot.Accounts {
		records = append(records, []string{
			strconv.FormatInt(account.Number, 10),
			account.Owner,
			account.Balance,
		})
	}
	if err := writer.WriteAll(records); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(ErrStorageIO, "failed to write %v: %v", tmpPath, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(ErrStorageIO, "failed to close %v: %v", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(ErrStorageIO, "failed to replace %v: %v", s.path, err)
	}
	return nil
}

// LoadSnapshot reads the complete snapshot back. A missing file is not
// an error: an empty snapshot with the default counter seed is returned
func (s *csvStorage) LoadSnapshot(ctx context.Context) (*SnapshotDTO, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info(ctx, "No snapshot file at %v, starting empty", s.path)
			return &SnapshotDTO{NextAccountNumber: DefaultNextAccountNumber}, nil
		}
		return nil, errors.Wrapf(ErrStorageIO, "failed to open %v: %v", s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptState, "failed to parse %v: %v", s.path, err)
	}

	if len(records) == 0 {
		return &SnapshotDTO{NextAccountNumber: DefaultNextAccountNumber}, nil
	}

	metadata := records[0]
	if len(metadata) != 2 || metadata[0] != metadataTag {
		return nil, errors.Wrapf(ErrCorruptState, "unexpected metadata record: %v", metadata)
	}
	nextNumber, err := strconv.ParseInt(metadata[1], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptState, "bad allocator counter: %v", metadata[1])
	}

	snapshot := &SnapshotDTO{NextAccountNumber: nextNumber}
	for i, record := range records[1:] {
		if i == 0 && isHeader(record) {
			continue
		}
		account, err := parseAccountRecord(record)
		if err != nil {
			return nil, err
		}
		snapshot.Accounts = append(snapshot.Accounts, *account)
	}
	logger.Debug(ctx, "Loaded snapshot of %v accounts from %v", len(snapshot.Accounts), s.path)
	return snapshot, nil
}

func isHeader(record []string) bool {
	if len(record) != len(accountsHeader) {
		return false
	}
	for i, field := range accountsHeader {
		if record[i] != field {
			return false
		}
	}
	return true
}

func parseAccountRecord(record []string) (*AccountDTO, error) {
	if len(record) != 3 {
		return nil, errors.Wrapf(ErrCorruptState, "unexpected field count: %v", record)
	}
	number, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptState, "bad account number: %v", record[0])
	}
	if _, err := decimal.NewFromString(record[2]); err != nil {
		return nil, errors.Wrapf(ErrCorruptState, "bad balance of account %v: %v", number, record[2])
	}
	return &AccountDTO{
		Number:  number,
		Owner:   record[1],
		Balance: record[2],
	}, nil
}

// CSVStorageOpt is an option of CSV storage
type CSVStorageOpt func(s *csvStorage)

// WithCSVPath will set a snapshot file path for a storage
func WithCSVPath(path string) CSVStorageOpt {
	return func(s *csvStorage) {
		s.path = path
	}
}

// NewCSVStorage returns an instance of a flat file storage
func NewCSVStorage(opts ...CSVStorageOpt) (Storage, error) {
	storage := &csvStorage{path: "bank_data.csv"}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}
