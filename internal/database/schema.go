package database

const schema = `
-- One row per card of the current dataset snapshot. The whole table is
-- replaced in a single transaction on every dataset update.
CREATE TABLE cards (
	cid INTEGER PRIMARY KEY,
	id INTEGER NOT NULL,
	cn_name TEXT,
	sc_name TEXT,
	md_name TEXT,
	nwbbs_n TEXT,
	cnocg_n TEXT,
	jp_ruby TEXT,
	jp_name TEXT,
	en_name TEXT,
	text_types TEXT,
	text_pdesc TEXT,
	text_desc TEXT,
	has_text BOOLEAN NOT NULL DEFAULT 0,
	data_ot INTEGER,
	data_setcode INTEGER,
	data_type INTEGER,
	data_atk INTEGER,
	data_def INTEGER,
	data_level INTEGER,
	data_race INTEGER,
	data_attribute INTEGER,
	has_data BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX idx_cards_id ON cards(id);
`

// migrations contains incremental schema changes applied in order based on
// PRAGMA user_version. migrations[0] is empty because version 0 uses the
// base schema.
var migrations = []string{
	"",
}
