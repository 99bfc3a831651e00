package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kdimtricp/cinematch/internal/apperr"
	"github.com/kdimtricp/cinematch/internal/catalog"
	"github.com/kdimtricp/cinematch/internal/models"
)

// Multi-valued fields (genres, cast, keywords, mood) are stored as
// |-delimited text, e.g. "|Action|Drama|", and matched with LIKE. This
// keeps every query portable between sqlite and postgres.

const movieColumns = `id, title, original_title, year, genres, director, directors,
	cast_members, plot, plot_embedding, runtime, rating, imdb_rating, poster_url,
	backdrop_url, language, country, keywords, mood, popularity, watch_count,
	created_at, updated_at`

type MovieRepository struct {
	db *DB
}

func NewMovieRepository(db *DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func encodeList(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return "|" + strings.Join(values, "|") + "|"
}

func decodeList(s string) []string {
	trimmed := strings.Trim(s, "|")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "|")
}

func (r *MovieRepository) Insert(ctx context.Context, m *models.Movie) error {
	embedding := ""
	if len(m.PlotEmbedding) > 0 {
		data, err := json.Marshal(m.PlotEmbedding)
		if err != nil {
			return fmt.Errorf("failed to encode plot embedding: %w", err)
		}
		embedding = string(data)
	}

	query := r.db.rebind(`INSERT INTO movies (` + movieColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.conn.ExecContext(ctx, query,
		m.ID, m.Title, m.OriginalTitle, m.Year, encodeList(m.Genres), m.Director,
		encodeList(m.Directors), encodeList(m.Cast), m.Plot, embedding, m.Runtime,
		m.Rating, m.IMDBRating, m.PosterURL, m.BackdropURL, m.Language, m.Country,
		encodeList(m.Keywords), encodeList(m.Mood), m.Popularity, m.WatchCount,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	query := r.db.rebind(`SELECT ` + movieColumns + ` FROM movies WHERE id = ?`)
	movie, err := scanMovie(r.db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("movie not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// GetByTitle resolves the best match for a case-insensitive title
// substring. Popularity then id break ties so repeated lookups resolve
// to the same record.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	query := r.db.rebind(`SELECT ` + movieColumns + ` FROM movies
		WHERE LOWER(title) LIKE LOWER(?)
		ORDER BY popularity DESC, id ASC LIMIT 1`)
	movie, err := scanMovie(r.db.conn.QueryRowContext(ctx, query, "%"+title+"%"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("movie not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie by title: %w", err)
	}
	return movie, nil
}

func (r *MovieRepository) Search(ctx context.Context, c catalog.Criteria) ([]models.Movie, error) {
	where, args := buildWhere(c)

	query := `SELECT ` + movieColumns + ` FROM movies` + where + orderBy(c.Sort)
	query += " LIMIT ?"
	args = append(args, c.Limit)
	if c.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, c.Offset)
	}

	rows, err := r.db.conn.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return movies, nil
}

func (r *MovieRepository) Count(ctx context.Context, c catalog.Criteria) (int, error) {
	where, args := buildWhere(c)

	var total int
	query := r.db.rebind(`SELECT COUNT(*) FROM movies` + where)
	if err := r.db.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return total, nil
}

func (r *MovieRepository) IncrementWatchCount(ctx context.Context, id string) error {
	query := r.db.rebind(`UPDATE movies SET watch_count = watch_count + 1 WHERE id = ?`)
	if _, err := r.db.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment watch count: %w", err)
	}
	return nil
}

func buildWhere(c catalog.Criteria) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if c.MatchAny {
		// Mood semantics: genre overlap OR keyword overlap OR mood-tag
		// overlap, any one suffices.
		var ors []string
		for _, g := range c.Genres {
			ors = append(ors, "genres LIKE ?")
			args = append(args, "%|"+g+"|%")
		}
		for _, k := range c.Keywords {
			ors = append(ors, "keywords LIKE ?", "mood LIKE ?")
			args = append(args, "%|"+k+"|%", "%|"+k+"|%")
		}
		if len(ors) > 0 {
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	} else if len(c.Genres) > 0 {
		var ors []string
		for _, g := range c.Genres {
			ors = append(ors, "genres LIKE ?")
			args = append(args, "%|"+g+"|%")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if c.Year > 0 {
		conds = append(conds, "year = ?")
		args = append(args, c.Year)
	} else {
		if c.YearFrom > 0 {
			conds = append(conds, "year >= ?")
			args = append(args, c.YearFrom)
		}
		if c.YearTo > 0 {
			conds = append(conds, "year <= ?")
			args = append(args, c.YearTo)
		}
	}

	if len(c.Directors) > 0 {
		var ors []string
		for _, d := range c.Directors {
			ors = append(ors, "LOWER(director) LIKE LOWER(?)", "LOWER(directors) LIKE LOWER(?)")
			pattern := "%" + d + "%"
			args = append(args, pattern, pattern)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(c.Actors) > 0 {
		var ors []string
		for _, a := range c.Actors {
			ors = append(ors, "LOWER(cast_members) LIKE LOWER(?)")
			args = append(args, "%"+a+"%")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if c.Search != "" {
		conds = append(conds, `(LOWER(title) LIKE LOWER(?) OR LOWER(plot) LIKE LOWER(?)
			OR LOWER(cast_members) LIKE LOWER(?) OR LOWER(director) LIKE LOWER(?)
			OR LOWER(keywords) LIKE LOWER(?))`)
		pattern := "%" + c.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}

	if c.HasRating {
		conds = append(conds, "rating >= ?")
		args = append(args, c.MinRating)
	}

	if c.ExcludeID != "" {
		conds = append(conds, "id != ?")
		args = append(args, c.ExcludeID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var sortColumns = map[string]string{
	"rating":     "rating",
	"year":       "year",
	"popularity": "popularity",
	"title":      "title",
	"id":         "id",
}

func orderBy(sort []catalog.SortField) string {
	if len(sort) == 0 {
		return " ORDER BY rating DESC, popularity DESC, id ASC"
	}
	var parts []string
	for _, field := range sort {
		column, ok := sortColumns[field.Key]
		if !ok {
			continue
		}
		direction := "ASC"
		if field.Desc {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	var genres, directors, cast, keywords, mood, embedding string

	err := row.Scan(&m.ID, &m.Title, &m.OriginalTitle, &m.Year, &genres, &m.Director,
		&directors, &cast, &m.Plot, &embedding, &m.Runtime, &m.Rating, &m.IMDBRating,
		&m.PosterURL, &m.BackdropURL, &m.Language, &m.Country, &keywords, &mood,
		&m.Popularity, &m.WatchCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	m.Genres = decodeList(genres)
	m.Directors = decodeList(directors)
	m.Cast = decodeList(cast)
	m.Keywords = decodeList(keywords)
	m.Mood = decodeList(mood)
	if embedding != "" {
		if err := json.Unmarshal([]byte(embedding), &m.PlotEmbedding); err != nil {
			return nil, fmt.Errorf("failed to decode plot embedding: %w", err)
		}
	}
	return &m, nil
}
