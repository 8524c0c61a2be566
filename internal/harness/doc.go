// Package harness runs query conformance scenarios.
//
// A scenario seeds a fresh in-memory store, runs a list of filtered
// queries and checks each outcome. The compiled SQL, its parameters and
// the returned rows are rendered as text so a whole scenario can be pinned
// with a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario checks"
//	seed:                      # omit to use the default usuarios and perfis
//	  usuarios:
//	    - {nome: "Eva Nunes", login: eva, perfil: auditor}
//	  perfis:
//	    - {nome: auditor, descricao: "Audita acessos"}
//	steps:
//	  - entity: usuarios
//	    request:
//	      filtros: [{coluna: perfil, valor: leitor}]
//	      ordenacao: ["login DESC"]
//	      colunas: [login]
//	    expect:
//	      count: 2
//	      column: login
//	      values: [carla, bruno]
//	  - entity: usuarios
//	    request:
//	      filtros: {coluna: nome, valor: x, filtro: "~"}
//	    expect:
//	      error: UNKNOWN_OPERATOR
//
// Seeded usuarios get the password testutil.SeedPassword unless senha is
// set, and creation timestamps come from a testutil.StepClock.
package harness
