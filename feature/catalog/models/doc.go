// Package models defines the relational schema for the normalized catalog.
//
// The schema follows the catalog ERD: people is the identity table, actors
// and directors are role markers whose ids reference people.person_id, and
// the *_titles tables hold the many-to-many credit relationships. The
// temp_* staging tables and the processing_status ledger are working state
// owned by the credit pipeline.
//
// All types are plain GORM models. Foreign keys are enforced by the pipeline
// (actor rows are only ever created alongside or after their person row),
// not by GORM associations, because the production schema is managed
// externally and only verified here (see core/database inspector).
package models
