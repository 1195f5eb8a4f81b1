package main

import "errors"

var errDatabaseVersionMismatch = errors.New("database version mismatch")
