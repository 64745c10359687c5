package expand_attendance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

// UseCase use case табеля смен для менеджера
type UseCase struct {
	cafeClient CafeAPIClient
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cafeClient CafeAPIClient, logger Logger) *UseCase {
	return &UseCase{
		cafeClient: cafeClient,
		logger:     logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExpandAttendance: validation failed: %v", err)
		return nil, err
	}

	// 2. Команды, смены и отметки запрашиваем параллельно
	var (
		teams     []domain.Team
		shifts    []domain.Shift
		overrides []domain.AttendanceOverride
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teams, err = uc.cafeClient.ListTeams(gctx)
		return wrapFetch("teams", err)
	})
	g.Go(func() (err error) {
		shifts, err = uc.cafeClient.ListShifts(gctx)
		return wrapFetch("shifts", err)
	})
	g.Go(func() (err error) {
		overrides, err = uc.cafeClient.ListAttendanceOverrides(gctx, req.From, req.To)
		return wrapFetch("attendance", err)
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("ExpandAttendance: from=%s to=%s: %v", req.From, req.To, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Фильтр по команде
	if req.TeamID != "" {
		teams = filterTeam(teams, req.TeamID)
	}

	// 4. Разворачиваем сетку
	entries := Expand(teams, shifts, req.From, req.To, overrides)

	uc.logger.Info("ExpandAttendance: from=%s to=%s, teams=%d, shifts=%d, overrides=%d, entries=%d",
		req.From, req.To, len(teams), len(shifts), len(overrides), len(entries))

	return &Response{
		From:    req.From,
		To:      req.To,
		Entries: entries,
	}, nil
}

func wrapFetch(what string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", what, err)
	}
	return nil
}

func filterTeam(teams []domain.Team, teamID string) []domain.Team {
	for _, team := range teams {
		if team.ID == teamID {
			return []domain.Team{team}
		}
	}
	return nil
}
