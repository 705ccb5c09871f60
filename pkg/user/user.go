package user

// User is the planner's view of an authenticated account. Authentication
// itself happens upstream; this service only resolves identities.
type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone string
}
