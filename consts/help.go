package consts

const (
	// BROADCAST_DISTANCE_RANGE is how far, in meters, a new request is
	// broadcast to nearby users
	BROADCAST_DISTANCE_RANGE = 5000

	// DEFAULT_SEARCH_RADIUS is used by proximity queries without an
	// explicit radius, in meters
	DEFAULT_SEARCH_RADIUS = 5000

	// DEFAULT_PAGE_LIMIT caps listing endpoints when no limit is given
	DEFAULT_PAGE_LIMIT = 20

	// REQUEST_COST_POINTS is debited from the author when a request is
	// created and credited to the helper on successful completion
	REQUEST_COST_POINTS = 1

	// DEFAULT_START_POINTS is the initial balance of a new account
	DEFAULT_START_POINTS = 5
)
