package records

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"

	"code.cloudfoundry.org/filelock"
	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/drip-capital/drippay/common"
	"github.com/drip-capital/drippay/constants"
)

// Store is the durable record of faucet state: addresses already paid,
// whitelisted requester identities, the disbursement report and the pending
// intent journal. Every mutation rewrites the backing file through a temp
// file, fsync and rename, so an acknowledged payout survives a crash.
type Store struct {
	mtx       sync.RWMutex
	directory string
	lockFile  io.Closer

	paidAddresses map[string]bool
	whitelist     map[string]bool
	reports       []common.DisbursementReport
	pending       []common.PendingIntent
}

func normalizeAddress(address string) string {
	return strings.ToLower(address)
}

func normalizeIdentity(identity string) string {
	return strings.TrimPrefix(strings.TrimSpace(identity), "@")
}

// Open locks the records directory and loads all durable records. Unreadable
// or corrupt files degrade to empty state with a loud log instead of refusing
// to start. Residual pending intents are reported the same way.
func Open(directory string) (*Store, error) {
	if err := os.MkdirAll(directory, 0700); err != nil {
		return nil, errors.Join(constants.ErrRecordStoreLoadFailed, err)
	}

	lock := filelock.NewLocker(path.Join(directory, ".lock"))
	lockFile, err := lock.Open()
	if err != nil {
		return nil, errors.Join(constants.ErrRecordsLocked, err)
	}

	store := &Store{
		directory:     directory,
		lockFile:      lockFile,
		paidAddresses: map[string]bool{},
		whitelist:     map[string]bool{},
		reports:       []common.DisbursementReport{},
		pending:       []common.PendingIntent{},
	}
	store.load()
	return store, nil
}

func (store *Store) load() {
	var paid []string
	if loadJsonRecord(path.Join(store.directory, constants.PAID_ADDRESSES_FILE_NAME), &paid) {
		for _, address := range paid {
			store.paidAddresses[normalizeAddress(address)] = true
		}
	}

	var whitelisted []string
	if loadJsonRecord(path.Join(store.directory, constants.WHITELIST_FILE_NAME), &whitelisted) {
		for _, identity := range whitelisted {
			store.whitelist[normalizeIdentity(identity)] = true
		}
	}

	loadJsonRecord(path.Join(store.directory, constants.PENDING_INTENTS_FILE_NAME), &store.pending)
	if len(store.pending) > 0 {
		slog.Error("unresolved pending intents found, matching transfers may have landed on-chain unrecorded",
			"count", len(store.pending),
			"recipients", lo.Map(store.pending, func(intent common.PendingIntent, _ int) string { return intent.Recipient }))
	}

	reportsFile := path.Join(store.directory, constants.DISBURSEMENT_REPORT_FILE_NAME)
	data, err := os.ReadFile(reportsFile)
	switch {
	case err == nil:
		if err := gocsv.UnmarshalBytes(data, &store.reports); err != nil {
			slog.Error("disbursement report unreadable, starting empty", "file", reportsFile, "error", err.Error())
			store.reports = []common.DisbursementReport{}
		}
	case !os.IsNotExist(err):
		slog.Error("disbursement report unreadable, starting empty", "file", reportsFile, "error", err.Error())
	}
}

// returns true when the target was populated
func loadJsonRecord(file string, target interface{}) bool {
	data, err := os.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("record unreadable, starting empty", "file", file, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		slog.Error("record corrupt, starting empty", "file", file, "error", err.Error())
		return false
	}
	return true
}

func writeFileAtomic(file string, data []byte) error {
	tmp, err := os.CreateTemp(path.Dir(file), path.Base(file)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return err
	}
	return syncDir(path.Dir(file))
}

// the rename itself is only durable once the containing directory is synced
func syncDir(dir string) error {
	handle, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer handle.Close()
	return handle.Sync()
}

func (store *Store) persistJson(fileName string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Join(constants.ErrPersistenceFailed, err)
	}
	if err := writeFileAtomic(path.Join(store.directory, fileName), data); err != nil {
		return errors.Join(constants.ErrPersistenceFailed, err)
	}
	return nil
}

func (store *Store) persistPaidAddresses() error {
	return store.persistJson(constants.PAID_ADDRESSES_FILE_NAME, lo.Keys(store.paidAddresses))
}

func (store *Store) persistWhitelist() error {
	return store.persistJson(constants.WHITELIST_FILE_NAME, lo.Keys(store.whitelist))
}

func (store *Store) persistPending() error {
	return store.persistJson(constants.PENDING_INTENTS_FILE_NAME, store.pending)
}

func (store *Store) persistReports() error {
	csv, err := gocsv.MarshalBytes(&store.reports)
	if err != nil {
		return errors.Join(constants.ErrPersistenceFailed, err)
	}
	if err := writeFileAtomic(path.Join(store.directory, constants.DISBURSEMENT_REPORT_FILE_NAME), csv); err != nil {
		return errors.Join(constants.ErrPersistenceFailed, err)
	}
	return nil
}

func (store *Store) Close() error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if store.lockFile == nil {
		return nil
	}
	err := store.lockFile.Close()
	store.lockFile = nil
	os.Remove(path.Join(store.directory, ".lock"))
	return err
}

func (store *Store) IsPaid(address string) bool {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	return store.paidAddresses[normalizeAddress(address)]
}

func (store *Store) PaidAddresses() []string {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	return lo.Keys(store.paidAddresses)
}

func (store *Store) IsWhitelisted(identity string) bool {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	return store.whitelist[normalizeIdentity(identity)]
}

func (store *Store) WhitelistedIdentities() []string {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	return lo.Keys(store.whitelist)
}

// AddWhitelistedIdentity is idempotent - returns false without touching disk
// when the identity is already present.
func (store *Store) AddWhitelistedIdentity(identity string) (bool, error) {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	normalized := normalizeIdentity(identity)
	if store.whitelist[normalized] {
		return false, nil
	}
	store.whitelist[normalized] = true
	if err := store.persistWhitelist(); err != nil {
		delete(store.whitelist, normalized)
		return false, err
	}
	return true, nil
}

func (store *Store) ClearWhitelist() error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	backup := store.whitelist
	store.whitelist = map[string]bool{}
	if err := store.persistWhitelist(); err != nil {
		store.whitelist = backup
		return err
	}
	return nil
}

// JournalPendingIntent records the intent to broadcast a transfer before the
// transfer leaves the process. A crash after broadcast leaves the intent
// behind as evidence.
func (store *Store) JournalPendingIntent(intent common.PendingIntent) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.pending = append(store.pending, intent)
	if err := store.persistPending(); err != nil {
		store.pending = store.pending[:len(store.pending)-1]
		return err
	}
	return nil
}

func (store *Store) UpdatePendingIntentTxHash(requestId string, txHash string) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	for i := range store.pending {
		if store.pending[i].RequestId == requestId {
			store.pending[i].TxHash = txHash
			break
		}
	}
	return store.persistPending()
}

// DropPendingIntent removes the journal entry of a transfer which is known to
// have failed before or during broadcast.
func (store *Store) DropPendingIntent(requestId string) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.pending = lo.Filter(store.pending, func(intent common.PendingIntent, _ int) bool {
		return intent.RequestId != requestId
	})
	return store.persistPending()
}

func (store *Store) PendingIntents() []common.PendingIntent {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	result := make([]common.PendingIntent, len(store.pending))
	copy(result, store.pending)
	return result
}

// CommitDisbursement is the sole mutation point of the paid-address set. The
// paid record hits disk first so that a partial commit can never leave a
// recipient payable again; the report row follows and the matching pending
// intent is resolved in the same step.
func (store *Store) CommitDisbursement(report common.DisbursementReport) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	normalized := normalizeAddress(report.Recipient)
	if !store.paidAddresses[normalized] {
		store.paidAddresses[normalized] = true
		if err := store.persistPaidAddresses(); err != nil {
			delete(store.paidAddresses, normalized)
			return err
		}
	}

	store.reports = append(store.reports, report)
	if err := store.persistReports(); err != nil {
		// the paid record stays durable, a missing accounting row is the
		// lesser failure than a double payout
		store.reports = store.reports[:len(store.reports)-1]
		return err
	}

	store.pending = lo.Filter(store.pending, func(intent common.PendingIntent, _ int) bool {
		return intent.RequestId != report.RequestId
	})
	// the payout is durable at this point, a stale journal entry is harmless
	return store.persistPending()
}

func (store *Store) Reports() []common.DisbursementReport {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	result := make([]common.DisbursementReport, len(store.reports))
	copy(result, store.reports)
	return result
}
