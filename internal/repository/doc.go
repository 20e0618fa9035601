// Package repository implements SurrealDB persistence for dating profiles
// and connection requests.
//
// Repositories accept a database.Database and speak parameterized SurrealQL.
// Record ids cross the package boundary as "table:key" strings and are turned
// back into records with type::record() inside queries.
//
// Question answers are stored as an object keyed by the question id rendered
// as a string, since SurrealDB object keys are strings.
//
// # Example Usage
//
//	profiles := NewDatingProfileRepository(db)
//	profile, err := profiles.GetByUserID(ctx, "user:ab123")
//	if err != nil {
//	    return err
//	}
//	if profile == nil {
//	    // user has not opted in to dating
//	}
package repository
