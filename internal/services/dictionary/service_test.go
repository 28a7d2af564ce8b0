package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wordarena/wordarena-go/internal/model"
	"github.com/wordarena/wordarena-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestNotLoadedInitially() {
	s.False(s.service.IsLoaded())
	s.False(s.service.IsAcceptedWord("crane"))
}

func (s *ServiceSuite) TestLoadWords() {
	err := s.service.LoadWords([]string{"crane", "trace"})
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.True(s.service.IsAcceptedWord("crane"))
	s.False(s.service.IsAcceptedWord("zzzzz"))
}

func (s *ServiceSuite) TestLoadWordsNormalizes() {
	err := s.service.LoadWords([]string{"  CRANE  ", "Trace"})
	s.Require().NoError(err)

	s.True(s.service.IsAcceptedWord("crane"))
	s.True(s.service.IsAcceptedWord("trace"))
}

func (s *ServiceSuite) TestLoadWordsDropsWrongLengthWords() {
	err := s.service.LoadWords([]string{"crane", "cat", "cranes"})
	s.Require().NoError(err)

	s.Equal(1, s.service.WordCount())
	s.False(s.service.IsAcceptedWord("cat"))
}

func (s *ServiceSuite) TestIsAcceptedWordIsCaseInsensitive() {
	_ = s.service.LoadWords([]string{"crane"})
	s.True(s.service.IsAcceptedWord("CRANE"))
}

func (s *ServiceSuite) TestLoadFromStorageNotLoaded() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"crane", "trace"})

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromFilePersistsToStorage() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	err := os.WriteFile(path, []byte("crane\ntrace\n\nbrace\n"), 0644)
	s.Require().NoError(err)

	err = s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(3, s.service.WordCount())

	// A fresh service can now load from storage
	fresh := New(s.storage)
	s.Require().NoError(fresh.LoadFromStorage(s.ctx))
	s.True(fresh.IsAcceptedWord("brace"))
}

func (s *ServiceSuite) TestLoadFromFileMissingFile() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
}

func (s *ServiceSuite) TestReadWordFileSkipsBlankLines() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	err := os.WriteFile(path, []byte("crane\n\n  \ntrace\n"), 0644)
	s.Require().NoError(err)

	words, err := ReadWordFile(path)
	s.Require().NoError(err)
	s.Equal([]string{"crane", "trace"}, words)
}
