// Copyright 2018 Google Inc. All Rights Reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

/*
Package ssml implements the intents of the SSML examples action.

A Handler answers the Welcome, Fallback and Choose Example intents using
response templates and a catalog of SSML examples. Responses are ordered
lists of plain text and SSML segments; Actions adapts a Handler to a
fulfillment server.
*/
package ssml
