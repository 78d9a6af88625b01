// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

/*
Package fulfillment provides a HTTP handler for processing Dialogflow fulfillment
requests.

Requests are dispatched to an ActionFunc registered under the intent display
name, or failing that the action name, of the query result.

This package also provides a server implementation for building Dialogflow
fulfillment webhooks, with basic authentication, Let's Encrypt certificates,
a health endpoint and Prometheus metrics.
*/
package fulfillment
