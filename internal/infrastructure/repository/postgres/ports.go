package postgres

import (
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
)

var (
	_ season.Repository   = (*SeasonRepository)(nil)
	_ division.Repository = (*DivisionRepository)(nil)
	_ category.Repository = (*CategoryRepository)(nil)
	_ field.Repository    = (*FieldRepository)(nil)
	_ team.Repository     = (*TeamRepository)(nil)
	_ player.Repository   = (*PlayerRepository)(nil)
	_ payment.Repository  = (*PaymentRepository)(nil)
	_ match.Repository    = (*MatchRepository)(nil)
	_ referee.Repository  = (*RefereeRepository)(nil)
)
