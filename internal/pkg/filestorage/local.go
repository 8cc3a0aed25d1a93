package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/clubhub/internal/pkg/apperrors"
	"github.com/yigit/clubhub/internal/pkg/logger"
)

// Folder groups stored assets by what they belong to.
type Folder string

const (
	FolderClubLogos       Folder = "club_logos"
	FolderProfilePictures Folder = "profile_pictures"
	FolderLeaderDocuments Folder = "leader_documents"
	FolderEventImages     Folder = "event_images"
)

var allowedExtensions = map[Folder][]string{
	FolderClubLogos:       {".png", ".jpg", ".jpeg", ".gif", ".webp"},
	FolderProfilePictures: {".png", ".jpg", ".jpeg", ".gif", ".webp"},
	FolderEventImages:     {".png", ".jpg", ".jpeg", ".gif", ".webp"},
	FolderLeaderDocuments: {".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg"},
}

// Storage stores uploaded assets and hands back an opaque reference.
type Storage interface {
	Save(fileHeader *multipart.FileHeader, folder Folder) (string, error)
	Delete(reference string) error
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are written
	baseURL  string // optional public prefix for returned references
}

// NewLocalStorage creates a new LocalStorage rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the upload under folder with a random name and returns its reference.
// A nil header means nothing was uploaded and yields an empty reference.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, folder Folder) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !extensionAllowed(folder, ext) {
		return "", apperrors.NewValidationError(fmt.Sprintf("file type %q is not allowed", ext))
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(ls.basePath, string(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + ext
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := path.Join("uploads", string(folder), name)
	if ls.baseURL != "" {
		ref = ls.baseURL + "/" + path.Join(string(folder), name)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("reference", ref).Msg("File saved")
	return ref, nil
}

// Delete removes the file behind a reference returned by Save.
// Missing files are not an error.
func (ls *LocalStorage) Delete(reference string) error {
	physicalPath, err := ls.resolve(reference)
	if err != nil || physicalPath == "" {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// resolve maps a reference back to a path inside basePath.
func (ls *LocalStorage) resolve(reference string) (string, error) {
	if reference == "" {
		return "", nil
	}

	rel := reference
	if ls.baseURL != "" && strings.HasPrefix(rel, ls.baseURL+"/") {
		rel = strings.TrimPrefix(rel, ls.baseURL+"/")
	} else {
		rel = strings.TrimPrefix(rel, "uploads/")
	}

	folder, name := path.Split(path.Clean(rel))
	folder = strings.TrimSuffix(folder, "/")
	if _, ok := allowedExtensions[Folder(folder)]; !ok || name == "" || name == "." {
		return "", fmt.Errorf("invalid file reference: %s", reference)
	}

	return filepath.Join(ls.basePath, folder, name), nil
}

func extensionAllowed(folder Folder, ext string) bool {
	for _, allowed := range allowedExtensions[folder] {
		if ext == allowed {
			return true
		}
	}
	return false
}
