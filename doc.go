// Package myagri is the composition root of the MyAgri engine.
//
// It wires the domain (pkg/core, pkg/query, pkg/sim, pkg/diagnosis,
// pkg/session) to the storage adapters (filesystem, memory, SQLite) behind
// functional options, the same way the CLI in cmd/myagri does.
//
// Usage:
//
//	svc, err := myagri.New("./farm",
//		myagri.WithSeed(catalog.Activities()),
//		myagri.WithLogger(logger),
//	)
//
//	visible := myagri.Search(svc.Records(), myagri.Filter{Query: "maïs"})
//
//	drv := myagri.NewDriver(myagri.WithSpeed(2))
//	drv.Play()
//	defer drv.Close()
package myagri
