package mocks

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/clubhub/internal/pkg/filestorage"
)

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(fileHeader *multipart.FileHeader, folder filestorage.Folder) (string, error) {
	args := m.Called(fileHeader, folder)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) Delete(reference string) error {
	args := m.Called(reference)
	return args.Error(0)
}
