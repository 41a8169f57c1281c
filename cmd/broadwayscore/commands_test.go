package main

import (
	"testing"
)

func TestIngestScoreExportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	records := writeRecord(t, "Hadestown", "The New York Times", "Jesse Green")
	out, err := runCLI(t, env, "ingest", records)
	if err != nil {
		t.Fatalf("ingest: %v\n%s", err, out)
	}
	requireContains(t, out, "Inserted")

	out, err = runCLI(t, env, "score", "set", "hadestown", "critics", "86", "12")
	if err != nil {
		t.Fatalf("score set: %v\n%s", err, out)
	}
	requireContains(t, out, "Recorded critics score 86.0")

	out, err = runCLI(t, env, "score", "show", "hadestown")
	if err != nil {
		t.Fatalf("score show: %v\n%s", err, out)
	}
	requireContains(t, out, "critics")
	requireContains(t, out, "Combined: 86")

	out, err = runCLI(t, env, "export")
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	requireContains(t, out, "Exported 1 show(s)")
}

func TestScoreSetRejectsUnknownShow(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "score", "set", "nonesuch", "critics", "80", "5"); err == nil {
		t.Fatal("expected error for unknown show")
	}
}

func TestScoreSetRejectsBadSource(t *testing.T) {
	env := setupCLITestEnv(t)

	records := writeRecord(t, "Six", "Variety", "Frank Rizzo")
	if _, err := runCLI(t, env, "ingest", records); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := runCLI(t, env, "score", "set", "six", "vibes", "80", "5"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestAuditAliasesEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "audit", "aliases")
	if err != nil {
		t.Fatalf("audit aliases: %v\n%s", err, out)
	}
	requireContains(t, out, "No fuzzy candidates recorded")
}
