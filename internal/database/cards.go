package database

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
)

// CardRepo implements domain.CardRepository on the snapshot database.
type CardRepo struct {
	log zerolog.Logger
	db  *DB
}

func NewCardRepo(log zerolog.Logger, db *DB) domain.CardRepository {
	return &CardRepo{
		log: log.With().Str("repo", "cards").Logger(),
		db:  db,
	}
}

var _ domain.CardRepository = (*CardRepo)(nil)

var cardColumns = []string{
	"cid", "id",
	"cn_name", "sc_name", "md_name", "nwbbs_n", "cnocg_n",
	"jp_ruby", "jp_name", "en_name",
	"text_types", "text_pdesc", "text_desc", "has_text",
	"data_ot", "data_setcode", "data_type", "data_atk", "data_def",
	"data_level", "data_race", "data_attribute", "has_data",
}

// Replace swaps the persisted collection inside one transaction, so a failed
// save never disturbs the previous snapshot.
func (r *CardRepo) Replace(ctx context.Context, cards []domain.Card) error {
	tx, err := r.db.handler.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return errors.Wrap(err, "failed to clear previous snapshot")
	}

	query, _, err := r.db.squirrel.
		Insert("cards").
		Columns(cardColumns...).
		Values(make([]interface{}, len(cardColumns))...).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "error building insert query")
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert statement")
	}
	defer stmt.Close()

	for i := range cards {
		if _, err := stmt.ExecContext(ctx, cardArgs(&cards[i])...); err != nil {
			return errors.Wrapf(err, "failed to insert card cid=%d", cards[i].CID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit snapshot")
	}

	r.log.Debug().Int("count", len(cards)).Msg("stored card snapshot")
	return nil
}

// GetAll returns the persisted collection sorted by cid. An empty result is
// not an error.
func (r *CardRepo) GetAll(ctx context.Context) ([]domain.Card, error) {
	query, args, err := r.db.squirrel.
		Select(cardColumns...).
		From("cards").
		OrderBy("cid ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return cards, nil
}

// Clear removes the persisted snapshot.
func (r *CardRepo) Clear(ctx context.Context) error {
	if _, err := r.db.handler.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return errors.Wrap(err, "failed to clear snapshot")
	}
	return nil
}

// Count reports how many cards are persisted.
func (r *CardRepo) Count(ctx context.Context) (int, error) {
	query, args, err := r.db.squirrel.
		Select("COUNT(*)").
		From("cards").
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error building query")
	}

	var count int
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error counting cards")
	}
	return count, nil
}

func cardArgs(c *domain.Card) []interface{} {
	var (
		textTypes, textPdesc, textDesc sql.NullString
		hasText                        bool

		dataOt, dataSetcode, dataType sql.NullInt64
		dataAtk, dataDef              sql.NullInt64
		dataLevel, dataRace, dataAttr sql.NullInt64
		hasData                       bool
	)

	if c.Text != nil {
		hasText = true
		textTypes = nullString(c.Text.Types)
		textPdesc = nullString(c.Text.Pdesc)
		textDesc = nullString(c.Text.Desc)
	}
	if c.Data != nil {
		hasData = true
		dataOt = sql.NullInt64{Int64: int64(c.Data.Ot), Valid: true}
		dataSetcode = sql.NullInt64{Int64: int64(c.Data.Setcode), Valid: true}
		dataType = sql.NullInt64{Int64: int64(c.Data.Type), Valid: true}
		dataLevel = sql.NullInt64{Int64: int64(c.Data.Level), Valid: true}
		dataRace = sql.NullInt64{Int64: int64(c.Data.Race), Valid: true}
		dataAttr = sql.NullInt64{Int64: int64(c.Data.Attribute), Valid: true}
		if c.Data.Atk != nil {
			dataAtk = sql.NullInt64{Int64: int64(*c.Data.Atk), Valid: true}
		}
		if c.Data.Def != nil {
			dataDef = sql.NullInt64{Int64: int64(*c.Data.Def), Valid: true}
		}
	}

	return []interface{}{
		c.CID, c.ID,
		nullString(c.CnName), nullString(c.ScName), nullString(c.MdName),
		nullString(c.NwbbsN), nullString(c.CnocgN),
		nullString(c.JpRuby), nullString(c.JpName), nullString(c.EnName),
		textTypes, textPdesc, textDesc, hasText,
		dataOt, dataSetcode, dataType, dataAtk, dataDef,
		dataLevel, dataRace, dataAttr, hasData,
	}
}

func scanCard(rows *sql.Rows) (domain.Card, error) {
	var (
		c domain.Card

		cnName, scName, mdName, nwbbsN, cnocgN sql.NullString
		jpRuby, jpName, enName                 sql.NullString

		textTypes, textPdesc, textDesc sql.NullString
		hasText                        bool

		dataOt, dataSetcode, dataType sql.NullInt64
		dataAtk, dataDef              sql.NullInt64
		dataLevel, dataRace, dataAttr sql.NullInt64
		hasData                       bool
	)

	err := rows.Scan(
		&c.CID, &c.ID,
		&cnName, &scName, &mdName, &nwbbsN, &cnocgN,
		&jpRuby, &jpName, &enName,
		&textTypes, &textPdesc, &textDesc, &hasText,
		&dataOt, &dataSetcode, &dataType, &dataAtk, &dataDef,
		&dataLevel, &dataRace, &dataAttr, &hasData,
	)
	if err != nil {
		return c, err
	}

	c.CnName = cnName.String
	c.ScName = scName.String
	c.MdName = mdName.String
	c.NwbbsN = nwbbsN.String
	c.CnocgN = cnocgN.String
	c.JpRuby = jpRuby.String
	c.JpName = jpName.String
	c.EnName = enName.String

	if hasText {
		c.Text = &domain.CardText{
			Types: textTypes.String,
			Pdesc: textPdesc.String,
			Desc:  textDesc.String,
		}
	}
	if hasData {
		c.Data = &domain.CardData{
			Ot:        int(dataOt.Int64),
			Setcode:   int(dataSetcode.Int64),
			Type:      int(dataType.Int64),
			Level:     int(dataLevel.Int64),
			Race:      int(dataRace.Int64),
			Attribute: int(dataAttr.Int64),
		}
		if dataAtk.Valid {
			atk := int(dataAtk.Int64)
			c.Data.Atk = &atk
		}
		if dataDef.Valid {
			def := int(dataDef.Int64)
			c.Data.Def = &def
		}
	}

	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
