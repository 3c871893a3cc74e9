package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type fakeExportStorage struct {
	saved map[string][]byte
	fail  bool
}

func (f *fakeExportStorage) Save(filename string, data []byte) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[filename] = data
	return "/exports/" + filename, nil
}

func newExportService(repos *testRepos, storage exportStorage) *ExportService {
	students := NewStudentService(repos.students, repos.profiles, validator.New(), zap.NewNop(), testAvatarBaseURL)
	return NewExportService(students, storage, zap.NewNop())
}

func TestExportServiceCSV(t *testing.T) {
	storage := &fakeExportStorage{}
	svc := newExportService(newTestRepos(), storage)

	file, err := svc.LeaderboardExport(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "leaderboard-"+time.Now().Format("2006-01-02")+".csv", file.Filename)

	content := string(file.Data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rank,Name,Coins", lines[0])
	assert.Equal(t, "1,Zuxra,620", lines[1])
	assert.Equal(t, "3,Javohir,85", lines[3])

	// A copy lands in storage.
	assert.Contains(t, storage.saved, file.Filename)
}

func TestExportServicePDF(t *testing.T) {
	svc := newExportService(newTestRepos(), &fakeExportStorage{})

	file, err := svc.LeaderboardExport(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := newExportService(newTestRepos(), &fakeExportStorage{})

	_, err := svc.LeaderboardExport(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceArchiveFailureIsNotFatal(t *testing.T) {
	svc := newExportService(newTestRepos(), &fakeExportStorage{fail: true})

	file, err := svc.LeaderboardExport(context.Background(), "csv")
	require.NoError(t, err)
	assert.NotEmpty(t, file.Data)
}
