package model

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTeam   Role = "team"
	RoleClient Role = "client"
)
