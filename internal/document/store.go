package document

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docuveil/docuveil/internal/faults"
	"github.com/docuveil/docuveil/internal/logger"
	"github.com/docuveil/docuveil/internal/state"
)

// Store manages uploaded documents on disk with a JSON metadata index.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]Meta
	dir      string
	indexDir string
	logger   *logger.Logger

	// locks serializes redaction work per file
	locks sync.Map
}

// NewStore opens the store rooted at dir, creating it as needed.
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Get()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot create upload directory")
	}

	s := &Store{
		docs:     make(map[string]Meta),
		dir:      dir,
		indexDir: filepath.Join(dir, "documents.json"),
		logger:   log,
	}

	var saved []Meta
	if _, err := state.Load(s.indexDir, &saved); err != nil {
		return nil, err
	}
	for _, m := range saved {
		s.docs[m.ID] = m
	}
	return s, nil
}

// Save stores an uploaded file and returns its metadata. The file type
// is sniffed from the name; PDFs get their page count here and may be
// reclassified as scanned at parse time.
func (s *Store) Save(filename string, data []byte) (Meta, error) {
	if len(data) == 0 {
		return Meta{}, faults.New(faults.InvalidInput, "empty upload")
	}
	fileType, err := sniffType(filename)
	if err != nil {
		return Meta{}, err
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+filepath.Ext(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Meta{}, faults.Wrap(faults.Internal, err, "cannot store upload")
	}

	meta := Meta{
		ID:         id,
		Filename:   filepath.Base(filename),
		FileType:   fileType,
		Size:       int64(len(data)),
		PageCount:  1,
		UploadedAt: time.Now().UTC(),
		StoredPath: path,
	}
	if fileType == TypePDF {
		if n, err := pageCount(path); err == nil {
			meta.PageCount = n
		} else {
			s.logger.WithFileID(id).WithError(err).Warn("cannot count PDF pages")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = meta
	if err := s.persistLocked(); err != nil {
		return Meta{}, err
	}
	s.logger.WithFileID(id).WithFields("type", fileType, "size", meta.Size).Info("stored upload")
	return meta, nil
}

// Get returns a document's metadata.
func (s *Store) Get(id string) (Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.docs[id]
	if !ok {
		return Meta{}, faults.New(faults.NotFound, "document %q does not exist", id)
	}
	return m, nil
}

// List returns all documents, newest first.
func (s *Store) List() []Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Meta, 0, len(s.docs))
	for _, m := range s.docs {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

// Read returns a stored document's bytes.
func (s *Store) Read(id string) ([]byte, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(m.StoredPath)
	if err != nil {
		return nil, faults.Wrap(faults.Internal, err, "cannot read stored document")
	}
	return data, nil
}

// Delete removes a document and its stored file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.docs[id]
	if !ok {
		return faults.New(faults.NotFound, "document %q does not exist", id)
	}
	if err := os.Remove(m.StoredPath); err != nil && !os.IsNotExist(err) {
		return faults.Wrap(faults.Internal, err, "cannot remove stored document")
	}
	delete(s.docs, id)
	return s.persistLocked()
}

// Parse extracts a document's text. Scanned PDFs are reclassified and
// return empty content; their pages go through the image pipelines.
func (s *Store) Parse(id string) (*ParseResult, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var result *ParseResult
	switch m.FileType {
	case TypeDOCX:
		content, err := extractDOCXText(m.StoredPath)
		if err != nil {
			return nil, err
		}
		result = &ParseResult{
			FileID:    id,
			FileType:  TypeDOCX,
			Content:   content,
			PageCount: 1,
			Pages:     []string{content},
		}
	case TypePDF, TypePDFScanned:
		result, err = parsePDF(m.StoredPath)
		if err != nil {
			return nil, err
		}
		result.FileID = id
		if result.FileType != m.FileType {
			s.reclassify(id, result.FileType, result.PageCount)
		}
	case TypeImage:
		result = &ParseResult{
			FileID:    id,
			FileType:  TypeImage,
			PageCount: 1,
			IsScanned: true,
		}
	default:
		return nil, faults.New(faults.InvalidInput, "cannot parse file type %q", m.FileType)
	}
	return result, nil
}

// PageImage renders one page of a document as PNG bytes. Images return
// themselves; PDFs render at 150 dpi.
func (s *Store) PageImage(id string, page int) ([]byte, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	switch m.FileType {
	case TypeImage:
		return s.Read(id)
	case TypePDF, TypePDFScanned:
		return renderPDFPage(m.StoredPath, page, 150)
	default:
		return nil, faults.New(faults.InvalidInput, "file type %q has no page images", m.FileType)
	}
}

// Lock returns the per-document mutex, creating it on first use.
func (s *Store) Lock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Store) reclassify(id string, t FileType, pages int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.docs[id]
	if !ok {
		return
	}
	m.FileType = t
	m.PageCount = pages
	s.docs[id] = m
	if err := s.persistLocked(); err != nil {
		s.logger.WithFileID(id).WithError(err).Warn("cannot persist reclassification")
	}
}

func (s *Store) persistLocked() error {
	list := make([]Meta, 0, len(s.docs))
	for _, m := range s.docs {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return state.Save(s.indexDir, list)
}
