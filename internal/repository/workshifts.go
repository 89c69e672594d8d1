package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

func (r *Repository) CreateWorkshift(ws *domain.Workshift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO workshifts (name, owner_email, shift_count, duration_hours, pattern, pattern_start, gate_policy, holidays_always_off)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`
	args := []any{ws.Name, ws.OwnerEmail, ws.ShiftCount, ws.DurationHours, ws.Pattern, ws.PatternStart, ws.GatePolicy, ws.HolidaysAlwaysOff}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ws.ID, &ws.CreatedAt, &ws.Version); err != nil {
		return err
	}

	if err := insertWorkshiftDetails(ctx, tx, ws); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// insertWorkshiftDetails 插入开始时间和休息日区间两张从表
func insertWorkshiftDetails(ctx context.Context, tx *sql.Tx, ws *domain.Workshift) error {
	for i, st := range ws.StartTimes {
		query := `
			INSERT INTO workshift_start_times (workshift_id, idx, start_time)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, ws.ID, i, st); err != nil {
			return err
		}
	}

	for _, dr := range ws.DaysOff {
		query := `
			INSERT INTO workshift_days_off (workshift_id, start_date, end_date)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, ws.ID, dr.Start, dr.End); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) GetAllWorkshifts() ([]*domain.Workshift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			w.id,
			w.name,
			w.owner_email,
			w.shift_count,
			w.duration_hours,
			w.pattern,
			w.pattern_start,
			w.gate_policy,
			w.holidays_always_off,
			w.created_at,
			w.version,
			wst.idx,
			wst.start_time,
			wdo.start_date,
			wdo.end_date
		FROM workshifts w
		LEFT JOIN workshift_start_times wst ON w.id = wst.workshift_id
		LEFT JOIN workshift_days_off wdo ON w.id = wdo.workshift_id
		ORDER BY w.id, wst.idx
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workshiftsMap := make(map[int64]*domain.Workshift)
	startTimesMap := make(map[int64]map[int]string)         // workshiftID -> idx -> start_time
	daysOffMap := make(map[int64]map[domain.DateRange]bool) // workshiftID -> 去重后的区间集合
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID                int64
			Name              string
			OwnerEmail        string
			ShiftCount        int
			DurationHours     float64
			Pattern           string
			PatternStart      string
			GatePolicy        string
			HolidaysAlwaysOff bool
			CreatedAt         time.Time
			Version           int32

			Idx       sql.NullInt32
			StartTime sql.NullString
			StartDate sql.NullString
			EndDate   sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.OwnerEmail,
			&row.ShiftCount,
			&row.DurationHours,
			&row.Pattern,
			&row.PatternStart,
			&row.GatePolicy,
			&row.HolidaysAlwaysOff,
			&row.CreatedAt,
			&row.Version,
			&row.Idx,
			&row.StartTime,
			&row.StartDate,
			&row.EndDate,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := workshiftsMap[row.ID]; !exists {
			// 第一次查到这个 workshift，需要在 map 中初始化
			workshiftsMap[row.ID] = &domain.Workshift{
				ID:                row.ID,
				Name:              row.Name,
				OwnerEmail:        row.OwnerEmail,
				ShiftCount:        row.ShiftCount,
				DurationHours:     row.DurationHours,
				Pattern:           row.Pattern,
				PatternStart:      row.PatternStart,
				GatePolicy:        domain.GatePolicy(row.GatePolicy),
				HolidaysAlwaysOff: row.HolidaysAlwaysOff,
				CreatedAt:         row.CreatedAt,
				Version:           row.Version,
			}
			startTimesMap[row.ID] = make(map[int]string)
			daysOffMap[row.ID] = make(map[domain.DateRange]bool)
			order = append(order, row.ID)
		}

		if row.Idx.Valid {
			startTimesMap[row.ID][int(row.Idx.Int32)] = row.StartTime.String
		}
		if row.StartDate.Valid {
			// 两张从表做了笛卡尔积，同一个区间会出现多次，用 map 去重
			daysOffMap[row.ID][domain.DateRange{Start: row.StartDate.String, End: row.EndDate.String}] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 组装结果
	workshifts := make([]*domain.Workshift, 0, len(order))
	for _, id := range order {
		ws := workshiftsMap[id]
		assembleWorkshiftDetails(ws, startTimesMap[id], daysOffMap[id])
		workshifts = append(workshifts, ws)
	}

	return workshifts, nil
}

func assembleWorkshiftDetails(ws *domain.Workshift, startTimes map[int]string, daysOff map[domain.DateRange]bool) {
	ws.StartTimes = make([]string, len(startTimes))
	for idx, st := range startTimes {
		if idx >= 0 && idx < len(ws.StartTimes) {
			ws.StartTimes[idx] = st
		}
	}
	ws.DaysOff = make([]domain.DateRange, 0, len(daysOff))
	for dr := range daysOff {
		ws.DaysOff = append(ws.DaysOff, dr)
	}
}

func (r *Repository) GetWorkshiftByID(id int64) (*domain.Workshift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			w.name,
			w.owner_email,
			w.shift_count,
			w.duration_hours,
			w.pattern,
			w.pattern_start,
			w.gate_policy,
			w.holidays_always_off,
			w.created_at,
			w.version,
			wst.idx,
			wst.start_time,
			wdo.start_date,
			wdo.end_date
		FROM workshifts w
		LEFT JOIN workshift_start_times wst ON w.id = wst.workshift_id
		LEFT JOIN workshift_days_off wdo ON w.id = wdo.workshift_id
		WHERE w.id = $1
		ORDER BY wst.idx
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ws := &domain.Workshift{
		ID: id,
	}
	startTimes := make(map[int]string)
	daysOff := make(map[domain.DateRange]bool)
	found := false

	for rows.Next() {
		var row struct {
			Name              string
			OwnerEmail        string
			ShiftCount        int
			DurationHours     float64
			Pattern           string
			PatternStart      string
			GatePolicy        string
			HolidaysAlwaysOff bool
			CreatedAt         time.Time
			Version           int32

			Idx       sql.NullInt32
			StartTime sql.NullString
			StartDate sql.NullString
			EndDate   sql.NullString
		}

		dst := []any{
			&row.Name,
			&row.OwnerEmail,
			&row.ShiftCount,
			&row.DurationHours,
			&row.Pattern,
			&row.PatternStart,
			&row.GatePolicy,
			&row.HolidaysAlwaysOff,
			&row.CreatedAt,
			&row.Version,
			&row.Idx,
			&row.StartTime,
			&row.StartDate,
			&row.EndDate,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			found = true
			ws.Name = row.Name
			ws.OwnerEmail = row.OwnerEmail
			ws.ShiftCount = row.ShiftCount
			ws.DurationHours = row.DurationHours
			ws.Pattern = row.Pattern
			ws.PatternStart = row.PatternStart
			ws.GatePolicy = domain.GatePolicy(row.GatePolicy)
			ws.HolidaysAlwaysOff = row.HolidaysAlwaysOff
			ws.CreatedAt = row.CreatedAt
			ws.Version = row.Version
		}

		if row.Idx.Valid {
			startTimes[int(row.Idx.Int32)] = row.StartTime.String
		}
		if row.StartDate.Valid {
			daysOff[domain.DateRange{Start: row.StartDate.String, End: row.EndDate.String}] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	assembleWorkshiftDetails(ws, startTimes, daysOff)

	return ws, nil
}

func (r *Repository) UpdateWorkshift(ws *domain.Workshift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE workshifts
		SET
			name = $1,
			owner_email = $2,
			shift_count = $3,
			duration_hours = $4,
			pattern = $5,
			pattern_start = $6,
			gate_policy = $7,
			holidays_always_off = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`
	args := []any{ws.Name, ws.OwnerEmail, ws.ShiftCount, ws.DurationHours, ws.Pattern, ws.PatternStart, ws.GatePolicy, ws.HolidaysAlwaysOff, ws.ID, ws.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ws.Version); err != nil {
		return err
	}

	// 从表整体重建，比逐行比对简单得多
	if _, err := tx.ExecContext(ctx, `DELETE FROM workshift_start_times WHERE workshift_id = $1`, ws.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM workshift_days_off WHERE workshift_id = $1`, ws.ID); err != nil {
		return err
	}
	if err := insertWorkshiftDetails(ctx, tx, ws); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkshift(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM workshifts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
