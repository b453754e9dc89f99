package services

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/internal/storage"
)

const (
	backupPrefix      = "backups"
	backupContentType = "application/gzip"
	maxCollectionSize = 64 << 20
)

// BackupService snapshots every collection into a tar.gz archive kept in
// object storage, and restores such archives.
type BackupService struct {
	store   docstore.Store
	objects *storage.Storage
	now     func() time.Time
}

func NewBackupService(store docstore.Store, objects *storage.Storage) *BackupService {
	return &BackupService{store: store, objects: objects, now: time.Now}
}

func (s *BackupService) WithClock(now func() time.Time) *BackupService {
	s.now = now
	return s
}

// Backup uploads a snapshot to backups/<timestamp>.tar.gz and returns its key.
func (s *BackupService) Backup(ctx context.Context) (string, error) {
	archive, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	key := s.objects.Key(backupPrefix, s.now().UTC().Format("20060102T150405Z")+".tar.gz")
	if err := s.objects.PutBytes(ctx, key, archive, backupContentType); err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	return key, nil
}

// Restore downloads the archive stored under key and writes it back.
func (s *BackupService) Restore(ctx context.Context, key string) error {
	archive, err := s.objects.GetBytes(ctx, key)
	if err != nil {
		return fmt.Errorf("download backup %s: %w", key, err)
	}
	return s.RestoreArchive(ctx, archive)
}

// Snapshot returns a tar.gz holding <collection>.json for every collection.
func (s *BackupService) Snapshot(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	modTime := s.now().UTC()
	for _, name := range docstore.Collections {
		data, err := s.store.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		header := &tar.Header{
			Name:    name + ".json",
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: modTime,
		}
		if err := tw.WriteHeader(header); err != nil {
			return nil, err
		}
		if _, err := tw.Write(data); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreArchive validates the whole archive before writing any collection.
// Collections absent from the archive are left untouched.
func (s *BackupService) RestoreArchive(ctx context.Context, archive []byte) error {
	if len(archive) == 0 {
		return errors.New("empty backup archive")
	}
	gr, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return errors.New("invalid tar.gz backup")
	}
	defer gr.Close()

	collections, err := readCollections(tar.NewReader(gr))
	if err != nil {
		return err
	}
	for _, name := range docstore.Collections {
		data, ok := collections[name]
		if !ok {
			continue
		}
		if err := s.store.Write(ctx, name, data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func readCollections(tr *tar.Reader) (map[string][]byte, error) {
	collections := make(map[string][]byte)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.New("invalid tar.gz backup")
		}
		if header.FileInfo().IsDir() {
			continue
		}
		if !header.FileInfo().Mode().IsRegular() {
			return nil, errors.New("backup contains unsupported entries")
		}

		name, err := collectionFromEntry(header.Name)
		if err != nil {
			return nil, err
		}
		if _, dup := collections[name]; dup {
			return nil, fmt.Errorf("duplicate backup entry: %s", header.Name)
		}

		data, err := io.ReadAll(io.LimitReader(tr, maxCollectionSize+1))
		if err != nil {
			return nil, fmt.Errorf("read backup entry %s: %w", header.Name, err)
		}
		if len(data) > maxCollectionSize {
			return nil, fmt.Errorf("backup entry %s is too large", header.Name)
		}

		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("backup entry %s is not a JSON array", header.Name)
		}
		collections[name] = data
	}
	if len(collections) == 0 {
		return nil, errors.New("backup contains no collections")
	}
	return collections, nil
}

// collectionFromEntry accepts only top-level <collection>.json names.
func collectionFromEntry(entry string) (string, error) {
	name := strings.TrimPrefix(entry, "./")
	if name != path.Clean(name) || strings.Contains(name, "/") || path.Ext(name) != ".json" {
		return "", fmt.Errorf("invalid backup entry: %s", entry)
	}
	collection := strings.TrimSuffix(name, ".json")
	if !docstore.IsCollection(collection) {
		return "", fmt.Errorf("unknown collection in backup: %s", entry)
	}
	return collection, nil
}
