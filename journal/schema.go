package journal

const Schema = `
CREATE TABLE IF NOT EXISTS steps (
	episode_id TEXT NOT NULL,
	step INTEGER NOT NULL,
	action TEXT NOT NULL,
	reward REAL NOT NULL,
	balance REAL NOT NULL,
	equity REAL NOT NULL,
	free_margin REAL NOT NULL,
	margin REAL NOT NULL,
	profit REAL NOT NULL,
	terminated INTEGER NOT NULL,
	time DATETIME NOT NULL,
	PRIMARY KEY (episode_id, step)
);

CREATE TABLE IF NOT EXISTS trades (
	ticket INTEGER NOT NULL,
	episode_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	volume REAL NOT NULL,
	price REAL NOT NULL,
	time DATETIME NOT NULL,
	comment TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_steps_episode ON steps(episode_id);
CREATE INDEX IF NOT EXISTS idx_trades_episode ON trades(episode_id);
`
