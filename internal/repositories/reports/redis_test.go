package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
	mockclock "github.com/brainsnorkel/eso-builds/internal/pkg/clock/mock"
	"github.com/brainsnorkel/eso-builds/internal/repositories/reports"
	"github.com/brainsnorkel/eso-builds/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	clock   *mockclock.MockClock
	repo    reports.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := reports.NewRedisRepository(&reports.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func summaryFixture() *eso.ReportSummary {
	return &eso.ReportSummary{
		LogCode:   "a1b2c3d4",
		LogURL:    "https://www.esologs.com/reports/a1b2c3d4",
		Title:     "Tuesday Clears",
		GuildName: "Snorkelers",
		Encounters: []eso.EncounterResult{
			{
				Name:       "Count Ryelaz and Zilyesset",
				Difficulty: eso.DifficultyVeteran,
				Kill:       true,
				Players: []eso.PlayerBuild{
					{
						Handle:    "@tank",
						ClassName: "DK",
						Role:      eso.RoleTank,
						GearSets: []eso.GearSet{
							{Name: "Pearlescent Ward", PieceCount: 5, MaxPieces: 5, Category: eso.CategoryOrdinarySet},
						},
					},
				},
			},
		},
		GeneratedAt: time.Date(2026, 8, 20, 21, 0, 0, 0, time.UTC),
	}
}

func (s *RedisRepositoryTestSuite) TestSetAndGet() {
	fixture := summaryFixture()

	_, err := s.repo.Set(s.ctx, reports.SetInput{Summary: fixture})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, reports.GetInput{LogCode: fixture.LogCode})
	s.Require().NoError(err)
	s.Equal(fixture.Title, out.Summary.Title)
	s.Require().Len(out.Summary.Encounters, 1)
	s.Equal(eso.RoleTank, out.Summary.Encounters[0].Players[0].Role)
}

func (s *RedisRepositoryTestSuite) TestSetStampsGeneratedAt() {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	s.clock.EXPECT().Now().Return(now)

	fixture := summaryFixture()
	fixture.GeneratedAt = time.Time{}

	_, err := s.repo.Set(s.ctx, reports.SetInput{Summary: fixture})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, reports.GetInput{LogCode: fixture.LogCode})
	s.Require().NoError(err)
	s.True(now.Equal(out.Summary.GeneratedAt))
}

func (s *RedisRepositoryTestSuite) TestGetMissReturnsNotFound() {
	_, err := s.repo.Get(s.ctx, reports.GetInput{LogCode: "unseen"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	fixture := summaryFixture()
	_, err := s.repo.Set(s.ctx, reports.SetInput{Summary: fixture})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, reports.DeleteInput{LogCode: fixture.LogCode})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, reports.GetInput{LogCode: fixture.LogCode})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Get(s.ctx, reports.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Set(s.ctx, reports.SetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Set(s.ctx, reports.SetInput{Summary: &eso.ReportSummary{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, reports.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
