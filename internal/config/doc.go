// Package config loads, merges, validates and exposes the configuration of
// the application.
//
// A [Manager] is created once with [New] and passed to every consumer. Its
// lifecycle is:
//  1. [Manager.Load] picks the configuration file (GHOST_CONFIG, the given
//     path, or the default <appRoot>/config.yaml), creates it from
//     config.example.yaml when missing, validates the section of the active
//     environment (NODE_ENV) and merges it in;
//  2. [Manager.Set] merges further partial configuration at any time;
//  3. [Manager.ConnectDatabase] connects the document database once;
//  4. [Manager.Close] releases the connection.
//
// The configuration file is YAML whose top-level keys are environment names:
//
//	production:
//	  url: https://example.com
//	  database:
//	    mongodb:
//	      connection: {host: 127.0.0.1, port: 27017, database: icollege}
//	  server: {host: 127.0.0.1, port: 2368}
package config
