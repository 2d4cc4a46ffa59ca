// Package store keeps analysis runs in SQLite: one row per run, its shot frames and the per frame stats table.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/analysis"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/stats"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

//ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

//Store is a migrated SQLite database of analysis runs
type Store struct {
	*sql.DB
}

//Run describes one stored analysis
type Run struct {
	ID         string    `json:"id"`
	Video      string    `json:"video"`
	FrameCount int       `json:"frame_count"`
	FPS        float64   `json:"fps"`
	SpeedUnit  string    `json:"speed_unit"`
	PlayerIDs  [2]int    `json:"player_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

//Open opens (or creates) the database at path and brings its schema up to date
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", path, err)
	}
	db.SetMaxOpenConns(1) //sqlite has a single writer

	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

//MigrateUp runs every pending embedded migration. Returns nil when the schema is already up to date.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	//not closing m, it would close the underlying connection

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

//MigrateVersion returns the current schema version, 0 when nothing was applied yet
func (s *Store) MigrateVersion() (uint, bool, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	return version, dirty, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}

	return m, nil
}

//migrateLogger implements migrate.Logger
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

//SaveRun stores an analysis result of given video in a single transaction
func (s *Store) SaveRun(video string, res *analysis.Result) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, video, frame_count, fps, speed_unit, player1_track, player2_track, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, video, res.FrameCount, res.FPS, res.SpeedUnit, res.PlayerIDs[stats.Player1], res.PlayerIDs[stats.Player2],
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	shotStmt, err := tx.Prepare(`
		INSERT INTO shot_events (run_id, start_frame, end_frame, striker, ball_speed, opponent_speed)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare shot insert: %w", err)
	}
	defer shotStmt.Close()

	for i, frame := range res.ShotFrames {
		var end, striker sql.NullInt64
		var ballSpeed, opponentSpeed sql.NullFloat64
		if i < len(res.Shots) {
			shot := res.Shots[i]
			end = sql.NullInt64{Int64: int64(shot.EndFrame), Valid: true}
			striker = sql.NullInt64{Int64: int64(shot.Striker), Valid: true}
			ballSpeed = sql.NullFloat64{Float64: shot.BallSpeed, Valid: true}
			opponentSpeed = sql.NullFloat64{Float64: shot.OpponentSpeed, Valid: true}
		}

		if _, err := shotStmt.Exec(res.RunID, frame, end, striker, ballSpeed, opponentSpeed); err != nil {
			return fmt.Errorf("failed to insert shot frame %d: %w", frame, err)
		}
	}

	rowStmt, err := tx.Prepare(`
		INSERT INTO frame_stats (
			run_id, frame, player, shot_count, total_shot_speed, last_shot_speed,
			total_movement_speed, last_movement_speed, average_shot_speed, average_movement_speed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare stats insert: %w", err)
	}
	defer rowStmt.Close()

	for _, row := range res.Rows {
		for _, p := range []stats.Player{stats.Player1, stats.Player2} {
			ps := row.Players[p]
			_, err := rowStmt.Exec(res.RunID, row.Frame, int(p), ps.ShotCount, ps.TotalShotSpeed, ps.LastShotSpeed,
				ps.TotalMovementSpeed, ps.LastMovementSpeed, row.AverageShotSpeed[p], row.AverageMovementSpeed[p])
			if err != nil {
				return fmt.Errorf("failed to insert stats of frame %d: %w", row.Frame, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", res.RunID, err)
	}

	return nil
}

const runColumns = `run_id, video, frame_count, fps, speed_unit, player1_track, player2_track, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var createdAt int64
	err := row.Scan(&r.ID, &r.Video, &r.FrameCount, &r.FPS, &r.SpeedUnit, &r.PlayerIDs[0], &r.PlayerIDs[1], &createdAt)
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	return r, err
}

//ListRuns returns every stored run, newest first
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

//GetRun returns the run with given ID, ErrRunNotFound if there is none
func (s *Store) GetRun(id string) (*Run, error) {
	r, err := scanRun(s.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	return &r, nil
}

//LoadShots returns the shot frames of a run and the shots measured between them
func (s *Store) LoadShots(id string) ([]int, []stats.Shot, error) {
	if _, err := s.GetRun(id); err != nil {
		return nil, nil, err
	}

	rows, err := s.Query(`
		SELECT start_frame, end_frame, striker, ball_speed, opponent_speed
		FROM shot_events WHERE run_id = ? ORDER BY start_frame`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query shots of run %s: %w", id, err)
	}
	defer rows.Close()

	frames := make([]int, 0)
	shots := make([]stats.Shot, 0)
	for rows.Next() {
		var start int
		var end, striker sql.NullInt64
		var ballSpeed, opponentSpeed sql.NullFloat64
		if err := rows.Scan(&start, &end, &striker, &ballSpeed, &opponentSpeed); err != nil {
			return nil, nil, fmt.Errorf("failed to scan shot: %w", err)
		}

		frames = append(frames, start)
		if end.Valid {
			shots = append(shots, stats.Shot{
				StartFrame:    start,
				EndFrame:      int(end.Int64),
				Striker:       stats.Player(striker.Int64),
				BallSpeed:     ballSpeed.Float64,
				OpponentSpeed: opponentSpeed.Float64,
			})
		}
	}

	return frames, shots, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}

	f := v.Float64
	return &f
}

//LoadStats returns the per frame stats table of a run
func (s *Store) LoadStats(id string) ([]stats.Row, error) {
	run, err := s.GetRun(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.Query(`
		SELECT frame, player, shot_count, total_shot_speed, last_shot_speed,
			total_movement_speed, last_movement_speed, average_shot_speed, average_movement_speed
		FROM frame_stats WHERE run_id = ? ORDER BY frame, player`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats of run %s: %w", id, err)
	}
	defer rows.Close()

	table := make([]stats.Row, 0, run.FrameCount)
	for rows.Next() {
		var frame int
		var p stats.Player
		var ps stats.PlayerStats
		var avgShot, avgMove sql.NullFloat64
		err := rows.Scan(&frame, &p, &ps.ShotCount, &ps.TotalShotSpeed, &ps.LastShotSpeed,
			&ps.TotalMovementSpeed, &ps.LastMovementSpeed, &avgShot, &avgMove)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if p != stats.Player1 && p != stats.Player2 {
			return nil, fmt.Errorf("run %s frame %d: bad player slot %d", id, frame, p)
		}

		if len(table) == 0 || table[len(table)-1].Frame != frame {
			table = append(table, stats.Row{Frame: frame})
		}
		row := &table[len(table)-1]
		row.Players[p] = ps
		row.AverageShotSpeed[p] = nullable(avgShot)
		row.AverageMovementSpeed[p] = nullable(avgMove)
	}

	return table, rows.Err()
}

//DeleteRun removes a run and everything stored with it
func (s *Store) DeleteRun(id string) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"frame_stats", "shot_events"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete %s of run %s: %w", table, id, err)
		}
	}

	res, err := tx.Exec(`DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrRunNotFound)
	}

	return tx.Commit()
}
