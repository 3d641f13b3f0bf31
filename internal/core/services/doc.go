// Package services implements the core business logic behind the
// driving ports: index rebuilds, similarity retrieval, answer
// generation with local/remote model routing, field memory, and
// knowledge base management.
package services
