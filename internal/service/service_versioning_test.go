package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/mock"
	"github.com/guanggu/icollege/internal/store"
	"github.com/guanggu/icollege/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestVersioningService(t *testing.T) (VersioningService, *mock.MockSettingsRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	settings := mock.NewMockSettingsRepository(ctrl)

	return NewVersioningService(settings, logger.Nop()), settings
}

func TestDefaultDatabaseVersion(t *testing.T) {
	svc, _ := newTestVersioningService(t)

	assert.Equal(t, DefaultDatabaseVersion, svc.DefaultDatabaseVersion())
}

func TestDatabaseVersion(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		setting models.Setting
		findErr error
		want    string
		wantErr error
	}{
		{name: "stored version", setting: models.Setting{Value: "002"}, want: "002"},
		{name: "empty value", setting: models.Setting{Value: ""}, want: "000"},
		{name: "missing setting", findErr: store.ErrSettingNotFound, wantErr: ErrNoDatabaseVersion},
		{name: "not a number", setting: models.Setting{Value: "abc"}, wantErr: ErrUnrecognisedDatabaseVersion},
		{name: "NaN", setting: models.Setting{Value: "NaN"}, wantErr: ErrUnrecognisedDatabaseVersion},
		{name: "driver error", findErr: errBoom, wantErr: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, settings := newTestVersioningService(t)
			settings.EXPECT().FindByKey(gomock.Any(), models.SettingDatabaseVersion).Return(tt.setting, tt.findErr)

			got, err := svc.DatabaseVersion(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetDatabaseVersion(t *testing.T) {
	svc, settings := newTestVersioningService(t)

	settings.EXPECT().Upsert(gomock.Any(), models.Setting{
		Key:   models.SettingDatabaseVersion,
		Value: DefaultDatabaseVersion,
		Type:  "core",
	}).Return(nil)

	require.NoError(t, svc.SetDatabaseVersion(context.Background()))
}

func TestSetDatabaseVersion_Error(t *testing.T) {
	svc, settings := newTestVersioningService(t)
	settings.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(store.ErrWritingDocuments)

	require.ErrorIs(t, svc.SetDatabaseVersion(context.Background()), store.ErrWritingDocuments)
}
