// Package plan assembles per-service deployment plans for one application.
//
// A plan run takes the application's declared services (one optional web
// service plus any number of workers), its resource bindings, and its
// explicit variables, and produces one ServicePlan per service: the resolved
// environment, the image build parameters, the public port list, the scaling
// bounds, and, for workers, the supervision records.
//
// Planning is pure and deterministic. The produced plans are handed to
// internal/shell/artifact, which writes the files the image build and
// provisioning collaborators consume.
package plan
